package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2/app"

	"github.com/gridhost/widget-dashboard/internal/config"
	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/layout"
	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/platform"
	"github.com/gridhost/widget-dashboard/internal/registry"
	"github.com/gridhost/widget-dashboard/internal/shell"
	"github.com/gridhost/widget-dashboard/internal/storage"
	"github.com/gridhost/widget-dashboard/internal/ui"
	"github.com/gridhost/widget-dashboard/internal/widgets"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.gridhost.widget-dashboard"
	AppName = "Widget Dashboard"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))

	settings := config.NewSettings(myApp)

	// Widget storage: persistent BadgerDB with memory fallback
	backend := openBackend(settings)

	// Registry with the built-in widget set
	reg := registry.New()
	themeRequests := event.NewFeed[platform.ThemeChangeRequest]()
	reg.RegisterAll(widgets.BuiltIn(themeRequests), "builtin")

	// Declarative layout and tenant documents
	var docs *config.Documents
	if dir := settings.GetConfigDirectory(); dir != "" {
		loaded, err := config.LoadDirectory(dir)
		if err != nil {
			slog.Warn("config documents unavailable", "dir", dir, "error", err)
		} else {
			docs = loaded
		}
	}

	// Desktop host shell; its theme bridge routes into the provider
	var provider *platform.Provider
	desktopShell, err := shell.New(myApp, myWindow, func(mode model.ThemeMode) {
		if provider != nil {
			provider.SetTheme(mode)
		}
	})
	var environment platform.Environment
	if err != nil {
		slog.Warn("desktop shell unavailable, running as plain web", "error", err)
		environment = platform.WebEnvironment{}
	} else {
		defer desktopShell.Close()
		environment = &platform.DesktopEnvironment{Bridge: desktopShell}
	}

	systemTheme := ui.NewFyneSystemTheme(myApp)
	defer systemTheme.Close()

	// The provider applies resolved themes through the root UI once it
	// exists; until then the swap goes straight to Fyne.
	var rootUI *ui.RootUI
	provider = platform.NewProvider(platform.ProviderOptions{
		DefaultTheme: settings.GetThemeMode(),
		TenantID:     settings.GetActiveTenant(),
		Registry:     reg,
		Environment:  environment,
		SystemTheme:  systemTheme,
		ApplyResolved: func(value model.ThemeValue) {
			if rootUI != nil {
				rootUI.ApplyTheme(value)
				return
			}
			myApp.Settings().SetTheme(ui.NewDashboardTheme(value, nil))
		},
		ThemeRequests: themeRequests,
	})
	defer provider.Close()

	engine := layout.NewEngine(reg, provider, backend)
	rootUI = ui.NewRootUI(myApp, myWindow, settings, reg, provider, engine, docs)
	defer rootUI.Close()

	myWindow.ShowAndRun()
}

// openBackend opens the persistent widget store, falling back to memory
// when the database cannot be opened or the user opted out of disk.
func openBackend(settings *config.Settings) storage.Backend {
	if settings.GetStorageInMemory() {
		return storage.NewMemoryBackend()
	}

	dataDir, err := platform.AppDataDir(AppID)
	if err != nil {
		slog.Warn("app data directory unavailable, using in-memory storage", "error", err)
		return storage.NewMemoryBackend()
	}

	backend, err := storage.OpenBadger(storage.DefaultBadgerConfig(filepath.Join(dataDir, "widget-store")))
	if err != nil {
		slog.Warn("persistent storage unavailable, using in-memory storage", "error", err)
		return storage.NewMemoryBackend()
	}
	return backend
}
