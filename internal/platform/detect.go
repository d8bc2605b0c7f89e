package platform

import (
	"strings"

	"github.com/gridhost/widget-dashboard/internal/model"
)

// Detect classifies the host environment into exactly one of shell, PWA or
// web, plus derived feature flags. It is a pure function of the descriptor
// at call time and does not memoize; callers wanting a once-per-session
// value wrap it themselves (the Provider does).
func Detect(env Environment) model.PlatformCapabilities {
	// Any one shell signal is sufficient
	shell := env.HostBridge() != nil ||
		env.EmbeddingRuntime() ||
		strings.Contains(strings.ToLower(env.UserAgent()), ShellRuntimeName)

	// Shell wins over PWA so the three kinds stay mutually exclusive;
	// web is the residual category.
	pwa := !shell && (env.StandaloneDisplay() || env.IOSStandalone())

	return model.PlatformCapabilities{
		IsShell: shell,
		IsPWA:   pwa,
		IsWeb:   !shell && !pwa,
		Features: model.PlatformFeatures{
			FileSystem:    shell || env.HasFilePicker(),
			Notifications: env.HasNotificationAPI(),
			SystemTray:    shell,
			Offline:       env.HasBackgroundSync(),
		},
	}
}
