package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle       = "app_title"
	KeySettings       = "settings"
	KeyFile           = "file"
	KeyLanguage       = "language"
	KeyLayout         = "layout"
	KeyTenant         = "tenant"
	KeyThemeMode      = "theme_mode"
	KeyConfigDir      = "config_directory"
	KeyWatchLayouts   = "watch_layouts"
	KeySave           = "save"
	KeyCancel         = "cancel"
	KeyBrowse         = "browse"
	KeySettingsSaved  = "settings_saved"
	KeyLayoutReloaded = "layout_reloaded"
	KeyThemeLight     = "theme_light"
	KeyThemeDark      = "theme_dark"
	KeyThemeSystem    = "theme_system"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:       "Widget Dashboard",
		KeySettings:       "Settings",
		KeyFile:           "File",
		KeyLanguage:       "Language",
		KeyLayout:         "Layout",
		KeyTenant:         "Tenant",
		KeyThemeMode:      "Theme",
		KeyConfigDir:      "Configuration Directory",
		KeyWatchLayouts:   "Reload layouts on file changes",
		KeySave:           "Save",
		KeyCancel:         "Cancel",
		KeyBrowse:         "Browse",
		KeySettingsSaved:  "Settings saved successfully!",
		KeyLayoutReloaded: "Layouts reloaded",
		KeyThemeLight:     "Light",
		KeyThemeDark:      "Dark",
		KeyThemeSystem:    "Follow system",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:       "Панель виджетов",
		KeySettings:       "Настройки",
		KeyFile:           "Файл",
		KeyLanguage:       "Язык",
		KeyLayout:         "Макет",
		KeyTenant:         "Арендатор",
		KeyThemeMode:      "Тема",
		KeyConfigDir:      "Каталог конфигурации",
		KeyWatchLayouts:   "Перезагружать макеты при изменении файлов",
		KeySave:           "Сохранить",
		KeyCancel:         "Отмена",
		KeyBrowse:         "Обзор",
		KeySettingsSaved:  "Настройки сохранены!",
		KeyLayoutReloaded: "Макеты перезагружены",
		KeyThemeLight:     "Светлая",
		KeyThemeDark:      "Тёмная",
		KeyThemeSystem:    "Как в системе",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:       "Painel de Widgets",
		KeySettings:       "Configurações",
		KeyFile:           "Arquivo",
		KeyLanguage:       "Idioma",
		KeyLayout:         "Layout",
		KeyTenant:         "Inquilino",
		KeyThemeMode:      "Tema",
		KeyConfigDir:      "Diretório de configuração",
		KeyWatchLayouts:   "Recarregar layouts ao alterar arquivos",
		KeySave:           "Salvar",
		KeyCancel:         "Cancelar",
		KeyBrowse:         "Procurar",
		KeySettingsSaved:  "Configurações salvas!",
		KeyLayoutReloaded: "Layouts recarregados",
		KeyThemeLight:     "Claro",
		KeyThemeDark:      "Escuro",
		KeyThemeSystem:    "Seguir o sistema",
	}
}
