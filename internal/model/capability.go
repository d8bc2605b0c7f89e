package model

// PlatformFeatures lists host features available to widgets
type PlatformFeatures struct {
	FileSystem    bool `json:"fileSystem"`
	Notifications bool `json:"notifications"`
	SystemTray    bool `json:"systemTray"`
	Offline       bool `json:"offline"`
}

// PlatformCapabilities classifies the host environment. Exactly one of
// IsShell/IsPWA/IsWeb is true. Computed once per session; a test override
// replaces the whole structure, never individual fields.
type PlatformCapabilities struct {
	IsShell  bool             `json:"isShell"`
	IsWeb    bool             `json:"isWeb"`
	IsPWA    bool             `json:"isPWA"`
	Features PlatformFeatures `json:"features"`
}

// Kind returns a display name for the active host kind
func (c PlatformCapabilities) Kind() string {
	switch {
	case c.IsShell:
		return "Desktop"
	case c.IsPWA:
		return "App"
	default:
		return "Web"
	}
}

// DefaultCapabilities is the conservative pre-detection value: plain web,
// no extra features. Consumers reading capabilities before detection
// settles observe this.
func DefaultCapabilities() PlatformCapabilities {
	return PlatformCapabilities{IsWeb: true}
}
