package platform

// ShellRuntimeName is the token the embedding runtime advertises in its
// user-agent string.
const ShellRuntimeName = "gridshell"

// Environment is the injected descriptor of ambient host state. Detection
// reads these signals instead of probing globals, so each target platform
// supplies one adapter and tests supply fakes.
type Environment interface {
	// HostBridge returns the host-shell bridge, or nil when absent
	HostBridge() HostShell

	// EmbeddingRuntime reports whether process metadata declares an
	// embedding runtime.
	EmbeddingRuntime() bool

	// UserAgent returns the environment's user-agent string, empty when
	// there is none.
	UserAgent() string

	// StandaloneDisplay reports a standalone display-mode signal
	StandaloneDisplay() bool

	// IOSStandalone reports the iOS-specific standalone flag
	IOSStandalone() bool

	// HasFilePicker reports a native file-picker API
	HasFilePicker() bool

	// HasNotificationAPI reports a notification API
	HasNotificationAPI() bool

	// HasBackgroundSync reports a background-sync-capable worker API
	HasBackgroundSync() bool
}

// DesktopEnvironment describes the app running inside its own shell window
// with a host bridge attached.
type DesktopEnvironment struct {
	Bridge HostShell
}

// HostBridge returns the attached shell bridge
func (e *DesktopEnvironment) HostBridge() HostShell { return e.Bridge }

// EmbeddingRuntime is always true on desktop
func (e *DesktopEnvironment) EmbeddingRuntime() bool { return true }

// UserAgent advertises the shell runtime
func (e *DesktopEnvironment) UserAgent() string { return ShellRuntimeName }

// StandaloneDisplay is false on desktop
func (e *DesktopEnvironment) StandaloneDisplay() bool { return false }

// IOSStandalone is false on desktop
func (e *DesktopEnvironment) IOSStandalone() bool { return false }

// HasFilePicker is true on desktop
func (e *DesktopEnvironment) HasFilePicker() bool { return true }

// HasNotificationAPI is true on desktop
func (e *DesktopEnvironment) HasNotificationAPI() bool { return true }

// HasBackgroundSync is false on desktop
func (e *DesktopEnvironment) HasBackgroundSync() bool { return false }

// WebEnvironment describes a plain browser tab with no extra signals
type WebEnvironment struct{}

// HostBridge returns nil; there is no shell in a browser tab
func (WebEnvironment) HostBridge() HostShell { return nil }

// EmbeddingRuntime is false on the web
func (WebEnvironment) EmbeddingRuntime() bool { return false }

// UserAgent is empty for the plain web environment
func (WebEnvironment) UserAgent() string { return "" }

// StandaloneDisplay is false on the web
func (WebEnvironment) StandaloneDisplay() bool { return false }

// IOSStandalone is false on the web
func (WebEnvironment) IOSStandalone() bool { return false }

// HasFilePicker is false on the web
func (WebEnvironment) HasFilePicker() bool { return false }

// HasNotificationAPI is false on the web
func (WebEnvironment) HasNotificationAPI() bool { return false }

// HasBackgroundSync is false on the web
func (WebEnvironment) HasBackgroundSync() bool { return false }
