package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/gridhost/widget-dashboard/internal/config"
	"github.com/gridhost/widget-dashboard/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	tenants      []model.TenantConfig
	onSaved      func()

	// UI components
	themeSelect    *widget.Select
	tenantSelect   *widget.Select
	configDirEntry *widget.Entry
	watchCheck     *widget.Check
}

// NewSettingsDialog creates a new settings dialog. tenants populates the
// tenant selector; onSaved runs after a confirmed save.
func NewSettingsDialog(settings *config.Settings, localization *Localization, tenants []model.TenantConfig, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		tenants:      tenants,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog in one call
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, tenants []model.TenantConfig, onSaved func()) {
	NewSettingsDialog(settings, localization, tenants, window, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// modeLabel maps a theme mode to its localized label
func (sd *SettingsDialog) modeLabel(mode model.ThemeMode) string {
	switch mode {
	case model.ThemeModeLight:
		return sd.localization.GetText(KeyThemeLight)
	case model.ThemeModeDark:
		return sd.localization.GetText(KeyThemeDark)
	default:
		return sd.localization.GetText(KeyThemeSystem)
	}
}

// labelMode is the inverse of modeLabel
func (sd *SettingsDialog) labelMode(label string) model.ThemeMode {
	switch label {
	case sd.localization.GetText(KeyThemeLight):
		return model.ThemeModeLight
	case sd.localization.GetText(KeyThemeDark):
		return model.ThemeModeDark
	default:
		return model.ThemeModeSystem
	}
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Theme mode selection
	themeOptions := []string{}
	for _, mode := range sd.settings.GetThemeModeOptions() {
		themeOptions = append(themeOptions, sd.modeLabel(mode))
	}
	sd.themeSelect = widget.NewSelect(themeOptions, nil)

	// Tenant selection
	tenantOptions := []string{config.DefaultTenant}
	for _, tenant := range sd.tenants {
		if tenant.ID != config.DefaultTenant {
			tenantOptions = append(tenantOptions, tenant.ID)
		}
	}
	sd.tenantSelect = widget.NewSelect(tenantOptions, nil)

	// Configuration directory selection
	sd.configDirEntry = widget.NewEntry()
	sd.configDirEntry.SetPlaceHolder("Layout and tenant documents directory")

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	configDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.configDirEntry)

	// Layout file watching
	sd.watchCheck = widget.NewCheck(sd.localization.GetText(KeyWatchLayouts), nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyThemeMode)+":"),
		sd.themeSelect,

		widget.NewLabel(sd.localization.GetText(KeyTenant)+":"),
		sd.tenantSelect,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyConfigDir)+":"),
		configDirRow,
		sd.watchCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.themeSelect.SetSelected(sd.modeLabel(sd.settings.GetThemeMode()))
	sd.tenantSelect.SetSelected(sd.settings.GetActiveTenant())
	sd.configDirEntry.SetText(sd.settings.GetConfigDirectory())
	sd.watchCheck.SetChecked(sd.settings.GetWatchLayouts())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.configDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.themeSelect.Selected != "" {
		sd.settings.SetThemeMode(sd.labelMode(sd.themeSelect.Selected))
	}
	if sd.tenantSelect.Selected != "" {
		sd.settings.SetActiveTenant(sd.tenantSelect.Selected)
	}
	sd.settings.SetConfigDirectory(sd.configDirEntry.Text)
	sd.settings.SetWatchLayouts(sd.watchCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved),
		sd.window,
	)
}
