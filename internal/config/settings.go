package config

import (
	"fyne.io/fyne/v2"

	"github.com/gridhost/widget-dashboard/internal/model"
)

// Settings keys for Fyne preferences
const (
	KeyThemeMode     = "theme_mode"
	KeyActiveTenant  = "active_tenant"
	KeyActiveLayout  = "active_layout"
	KeyConfigDir     = "config_directory"
	KeyWatchLayouts  = "watch_layout_files"
	KeyStorageInMem  = "storage_in_memory"
	KeyLanguage      = "app_language"
)

// Default values
const (
	DefaultThemeMode    = model.ThemeModeSystem
	DefaultTenant       = "default"
	DefaultWatchLayouts = true
	DefaultLanguage     = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetThemeMode returns the configured theme mode, falling back to system
// when the stored value is missing or invalid.
func (s *Settings) GetThemeMode() model.ThemeMode {
	mode := model.ThemeMode(s.app.Preferences().String(KeyThemeMode))
	if !mode.IsValid() {
		s.SetThemeMode(DefaultThemeMode)
		return DefaultThemeMode
	}
	return mode
}

// SetThemeMode persists the theme mode; invalid modes are ignored
func (s *Settings) SetThemeMode(mode model.ThemeMode) {
	if !mode.IsValid() {
		return
	}
	s.app.Preferences().SetString(KeyThemeMode, string(mode))
}

// GetThemeModeOptions returns the selectable theme modes
func (s *Settings) GetThemeModeOptions() []model.ThemeMode {
	return []model.ThemeMode{model.ThemeModeLight, model.ThemeModeDark, model.ThemeModeSystem}
}

// GetActiveTenant returns the selected tenant id
func (s *Settings) GetActiveTenant() string {
	tenant := s.app.Preferences().String(KeyActiveTenant)
	if tenant == "" {
		s.SetActiveTenant(DefaultTenant)
		return DefaultTenant
	}
	return tenant
}

// SetActiveTenant persists the selected tenant id
func (s *Settings) SetActiveTenant(tenantID string) {
	if tenantID == "" {
		tenantID = DefaultTenant
	}
	s.app.Preferences().SetString(KeyActiveTenant, tenantID)
}

// GetActiveLayout returns the selected layout id; empty means the
// tenant's default layout.
func (s *Settings) GetActiveLayout() string {
	return s.app.Preferences().String(KeyActiveLayout)
}

// SetActiveLayout persists the selected layout id
func (s *Settings) SetActiveLayout(layoutID string) {
	s.app.Preferences().SetString(KeyActiveLayout, layoutID)
}

// GetConfigDirectory returns the directory holding layout and tenant
// documents; empty means only the built-in layout is available.
func (s *Settings) GetConfigDirectory() string {
	return s.app.Preferences().String(KeyConfigDir)
}

// SetConfigDirectory persists the configuration document directory
func (s *Settings) SetConfigDirectory(dir string) {
	s.app.Preferences().SetString(KeyConfigDir, dir)
}

// GetWatchLayouts returns whether layout files are watched for changes
func (s *Settings) GetWatchLayouts() bool {
	return s.app.Preferences().BoolWithFallback(KeyWatchLayouts, DefaultWatchLayouts)
}

// SetWatchLayouts persists the layout watching flag
func (s *Settings) SetWatchLayouts(watch bool) {
	s.app.Preferences().SetBool(KeyWatchLayouts, watch)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetStorageInMemory returns whether widget storage skips the on-disk
// backend. Useful for kiosk setups and tests.
func (s *Settings) GetStorageInMemory() bool {
	return s.app.Preferences().Bool(KeyStorageInMem)
}

// SetStorageInMemory persists the in-memory storage flag
func (s *Settings) SetStorageInMemory(inMemory bool) {
	s.app.Preferences().SetBool(KeyStorageInMem, inMemory)
}
