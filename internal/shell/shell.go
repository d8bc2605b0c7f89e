package shell

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/gridhost/widget-dashboard/internal/data"
	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/platform"
)

// DesktopShell implements platform.HostShell on top of Fyne and the local
// filesystem. Construct one per window at composition time.
type DesktopShell struct {
	app    fyne.App
	window fyne.Window

	watcher   *data.FileWatcher
	themeFeed *event.Feed[model.ThemeValue]

	// applyTheme is invoked when a widget or remote peer asks the host to
	// switch its native theme. The composition root wires it to the Fyne
	// theme swap.
	applyTheme func(model.ThemeMode)
}

// New creates the desktop shell. applyTheme may be nil when the host does
// not support switching its theme.
func New(app fyne.App, window fyne.Window, applyTheme func(model.ThemeMode)) (*DesktopShell, error) {
	watcher, err := data.NewFileWatcher()
	if err != nil {
		return nil, fmt.Errorf("create shell file watcher: %w", err)
	}
	return &DesktopShell{
		app:        app,
		window:     window,
		watcher:    watcher,
		themeFeed:  event.NewFeed[model.ThemeValue](),
		applyTheme: applyTheme,
	}, nil
}

// Close releases the shell's file watcher
func (s *DesktopShell) Close() error {
	return s.watcher.Close()
}

// NotifyThemeChanged informs bridge subscribers that the host's native
// theme changed. Called by the composition root when the Fyne settings
// variant flips.
func (s *DesktopShell) NotifyThemeChanged(value model.ThemeValue) {
	s.themeFeed.Publish(value)
}

// Window implements platform.HostShell
func (s *DesktopShell) Window() platform.WindowBridge {
	return &windowBridge{window: s.window}
}

// Theme implements platform.HostShell
func (s *DesktopShell) Theme() platform.ThemeBridge {
	return &themeBridge{shell: s}
}

// Files implements platform.HostShell
func (s *DesktopShell) Files() platform.FileBridge {
	return &fileBridge{shell: s}
}

// Notifications implements platform.HostShell
func (s *DesktopShell) Notifications() platform.NotificationBridge {
	return &notificationBridge{app: s.app}
}

// App implements platform.HostShell
func (s *DesktopShell) App() platform.AppBridge {
	return &appBridge{app: s.app}
}

// windowBridge maps window controls onto what Fyne exposes. Fyne has no
// programmatic minimize, so that call degrades to a no-op.
type windowBridge struct {
	window fyne.Window
}

func (w *windowBridge) Minimize() error { return nil }

func (w *windowBridge) Maximize() error {
	w.window.SetFullScreen(true)
	return nil
}

func (w *windowBridge) Close() error {
	w.window.Close()
	return nil
}

func (w *windowBridge) IsMaximized() (bool, error) {
	return w.window.FullScreen(), nil
}

// themeBridge surfaces the host's native theme
type themeBridge struct {
	shell *DesktopShell
}

func (t *themeBridge) Get() (model.ThemeValue, error) {
	if t.shell.app.Settings().ThemeVariant() == theme.VariantDark {
		return model.ThemeDark, nil
	}
	return model.ThemeLight, nil
}

func (t *themeBridge) Set(mode model.ThemeMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid theme mode %q", mode)
	}
	if t.shell.applyTheme != nil {
		t.shell.applyTheme(mode)
	}
	return nil
}

func (t *themeBridge) OnChanged(callback func(model.ThemeValue)) func() {
	return t.shell.themeFeed.Subscribe(callback)
}

// notificationBridge shows notifications through Fyne
type notificationBridge struct {
	app fyne.App
}

func (n *notificationBridge) Show(title, body string) (bool, error) {
	n.app.SendNotification(&fyne.Notification{Title: title, Content: body})
	return true, nil
}

// appBridge exposes build metadata
type appBridge struct {
	app fyne.App
}

func (a *appBridge) Version() string {
	return a.app.Metadata().Version
}

func (a *appBridge) Name() string {
	return a.app.Metadata().Name
}
