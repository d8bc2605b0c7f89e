package model

// ThemeMode is the user's explicit theme intent
type ThemeMode string

const (
	// ThemeModeLight forces the light palette
	ThemeModeLight ThemeMode = "light"

	// ThemeModeDark forces the dark palette
	ThemeModeDark ThemeMode = "dark"

	// ThemeModeSystem follows the OS preference
	ThemeModeSystem ThemeMode = "system"
)

// IsValid reports whether the mode is one of the three known values
func (m ThemeMode) IsValid() bool {
	return m == ThemeModeLight || m == ThemeModeDark || m == ThemeModeSystem
}

// ThemeValue is an effective palette after system-preference resolution
type ThemeValue string

const (
	// ThemeLight is the resolved light palette
	ThemeLight ThemeValue = "light"

	// ThemeDark is the resolved dark palette
	ThemeDark ThemeValue = "dark"
)

// Theme is the theme state visible to widgets: the user intent plus the
// value it currently resolves to.
type Theme struct {
	Mode     ThemeMode  `json:"mode"`
	Resolved ThemeValue `json:"resolved"`
}

// ResolveTheme computes the effective value for a mode. system is an
// explicit lookup of the OS preference supplied by the caller; a
// non-system mode resolves to itself.
func ResolveTheme(mode ThemeMode, system ThemeValue) ThemeValue {
	if mode == ThemeModeSystem {
		if system == ThemeDark {
			return ThemeDark
		}
		return ThemeLight
	}
	if mode == ThemeModeDark {
		return ThemeDark
	}
	return ThemeLight
}
