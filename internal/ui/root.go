package ui

import (
	"image/color"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/gridhost/widget-dashboard/internal/config"
	"github.com/gridhost/widget-dashboard/internal/data"
	"github.com/gridhost/widget-dashboard/internal/layout"
	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/platform"
	"github.com/gridhost/widget-dashboard/internal/registry"
)

// RootUI represents the main UI structure
type RootUI struct {
	app      fyne.App
	window   fyne.Window
	settings *config.Settings

	registry     *registry.Registry
	provider     *platform.Provider
	engine       *layout.Engine
	localization *Localization

	layoutSelect  *widget.Select
	contentHolder *fyne.Container

	mu          sync.Mutex
	docs        *config.Documents
	watcher     *data.FileWatcher
	watchID     string
	reloadTimer *time.Timer

	unsubRegistry func()
}

// NewRootUI creates and initializes the main UI
func NewRootUI(app fyne.App, window fyne.Window, settings *config.Settings,
	reg *registry.Registry, provider *platform.Provider, engine *layout.Engine,
	docs *config.Documents) *RootUI {

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if docs == nil {
		docs = &config.Documents{}
	}

	ui := &RootUI{
		app:          app,
		window:       window,
		settings:     settings,
		registry:     reg,
		provider:     provider,
		engine:       engine,
		localization: localization,
		docs:         docs,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	// Late registrations re-render the dashboard
	ui.unsubRegistry = reg.Subscribe(func() {
		fyne.Do(ui.renderDashboard)
	})

	ui.setupLayoutWatch()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	title := widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}

	ui.layoutSelect = widget.NewSelect(ui.layoutOptions(), func(layoutID string) {
		if layoutID == ui.settings.GetActiveLayout() {
			return
		}
		ui.settings.SetActiveLayout(layoutID)
		ui.renderDashboard()
	})
	ui.layoutSelect.PlaceHolder = ui.localization.GetText(KeyLayout)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil,
		title,
		container.NewHBox(ui.layoutSelect, settingsBtn),
	)

	ui.contentHolder = container.NewStack()
	ui.renderDashboard()

	content := container.NewBorder(
		header, // top
		nil,    // bottom
		nil,    // left
		nil,    // right
		ui.contentHolder,
	)

	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.createMenu()
	ui.renderDashboard()
}

// layoutOptions lists the selectable layout ids for the active tenant
func (ui *RootUI) layoutOptions() []string {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	tenant, hasTenant := ui.docs.TenantByID(ui.settings.GetActiveTenant())
	if hasTenant && len(tenant.Layouts) > 0 {
		return append([]string{}, tenant.Layouts...)
	}

	options := make([]string, 0, len(ui.docs.Layouts))
	for _, l := range ui.docs.Layouts {
		options = append(options, l.ID)
	}
	if len(options) == 0 {
		options = []string{defaultLayout().ID}
	}
	return options
}

// activeLayout resolves the layout to render: the explicit selection,
// then the tenant's default, then the first loaded document, then the
// built-in layout.
func (ui *RootUI) activeLayout() model.LayoutConfig {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	if id := ui.settings.GetActiveLayout(); id != "" {
		if cfg, ok := ui.docs.LayoutByID(id); ok {
			return cfg
		}
	}
	if tenant, ok := ui.docs.TenantByID(ui.settings.GetActiveTenant()); ok {
		if cfg, ok := ui.docs.LayoutByID(tenant.DefaultLayout); ok {
			return cfg
		}
	}
	if len(ui.docs.Layouts) > 0 {
		return ui.docs.Layouts[0]
	}
	return defaultLayout()
}

// defaultLayout is the built-in fallback shown when no documents are
// configured
func defaultLayout() model.LayoutConfig {
	return model.LayoutConfig{
		ID:      "default",
		Name:    "Default Dashboard",
		Columns: model.DefaultGridColumns,
		Gap:     model.DefaultGridGap,
		Widgets: []model.WidgetLayoutItem{
			{WidgetID: "clock", InstanceID: "clock-default", Column: 1, Row: 1, ColSpan: 4},
			{WidgetID: "theme-toggle", InstanceID: "theme-toggle-default", Column: 1, Row: 2, ColSpan: 4},
			{WidgetID: "notes", InstanceID: "notes-default", Column: 5, Row: 1, ColSpan: 8, RowSpan: 2},
			{WidgetID: "coming-soon-card", InstanceID: "coming-soon-default", Column: 1, Row: 3, ColSpan: 12},
		},
	}
}

// renderDashboard rebuilds the dashboard content from the active layout
func (ui *RootUI) renderDashboard() {
	rendered := ui.engine.Render(ui.activeLayout())

	ui.contentHolder.Objects = []fyne.CanvasObject{container.NewVScroll(rendered)}
	ui.contentHolder.Refresh()
}

// ApplyTheme swaps the Fyne theme to the resolved value, carrying the
// active tenant's brand color. Wired to the platform provider's resolved
// theme applications.
func (ui *RootUI) ApplyTheme(value model.ThemeValue) {
	var primary color.Color
	ui.mu.Lock()
	if tenant, ok := ui.docs.TenantByID(ui.settings.GetActiveTenant()); ok && tenant.Theme != nil {
		primary = ParseHexColor(tenant.Theme.PrimaryColor)
	}
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.app.Settings().SetTheme(NewDashboardTheme(value, primary))
	})
}

// SetDocuments replaces the loaded configuration documents and refreshes
// everything derived from them.
func (ui *RootUI) SetDocuments(docs *config.Documents) {
	if docs == nil {
		docs = &config.Documents{}
	}
	ui.mu.Lock()
	ui.docs = docs
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.layoutSelect.Options = ui.layoutOptions()
		ui.layoutSelect.Refresh()
		ui.renderDashboard()
	})
}

// setupLayoutWatch reloads configuration documents when files under the
// config directory change. Changes are debounced since editors fire
// several events per save.
func (ui *RootUI) setupLayoutWatch() {
	dir := ui.settings.GetConfigDirectory()
	if dir == "" || !ui.settings.GetWatchLayouts() {
		return
	}

	watcher, err := data.NewFileWatcher()
	if err != nil {
		slog.Warn("layout watching unavailable", "error", err)
		return
	}
	watchID, err := watcher.Watch(dir, func(data.FileChange) {
		ui.mu.Lock()
		if ui.reloadTimer != nil {
			ui.reloadTimer.Stop()
		}
		ui.reloadTimer = time.AfterFunc(LayoutReloadDebounce, ui.reloadDocuments)
		ui.mu.Unlock()
	})
	if err != nil {
		slog.Warn("layout watching unavailable", "dir", dir, "error", err)
		watcher.Close()
		return
	}

	ui.watcher = watcher
	ui.watchID = watchID
}

// reloadDocuments re-reads the config directory after a file change
func (ui *RootUI) reloadDocuments() {
	dir := ui.settings.GetConfigDirectory()
	docs, err := config.LoadDirectory(dir)
	if err != nil {
		slog.Warn("layout reload failed", "dir", dir, "error", err)
		return
	}
	slog.Info("layouts reloaded", "dir", dir,
		"layouts", len(docs.Layouts), "tenants", len(docs.Tenants))
	ui.SetDocuments(docs)
	ui.app.SendNotification(fyne.NewNotification(
		ui.localization.GetText(KeyAppTitle),
		ui.localization.GetText(KeyLayoutReloaded)))
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ui.mu.Lock()
	tenants := append([]model.TenantConfig{}, ui.docs.Tenants...)
	ui.mu.Unlock()

	ShowSettingsDialog(ui.window, ui.settings, ui.localization, tenants, func() {
		ui.provider.SetTheme(ui.settings.GetThemeMode())
		ui.layoutSelect.Options = ui.layoutOptions()
		ui.layoutSelect.Refresh()
		ui.renderDashboard()
	})
}

// Close releases the root UI's background resources
func (ui *RootUI) Close() {
	if ui.unsubRegistry != nil {
		ui.unsubRegistry()
	}
	ui.mu.Lock()
	if ui.reloadTimer != nil {
		ui.reloadTimer.Stop()
	}
	watcher := ui.watcher
	ui.mu.Unlock()

	if watcher != nil {
		watcher.Close()
	}
	ui.engine.Teardown()
}
