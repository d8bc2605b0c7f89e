package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
)

// Window and dialog sizing
const (
	DefaultWindowWidth  float32 = 1100
	DefaultWindowHeight float32 = 720

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420
)

// Debounce durations
const (
	LayoutReloadDebounce = 250 * time.Millisecond
)
