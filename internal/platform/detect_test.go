package platform

import (
	"testing"
)

// fakeEnvironment lets tests flip individual signals
type fakeEnvironment struct {
	bridge        HostShell
	embedding     bool
	userAgent     string
	standalone    bool
	iosStandalone bool
	filePicker    bool
	notifications bool
	backgroundSync bool
}

func (e fakeEnvironment) HostBridge() HostShell     { return e.bridge }
func (e fakeEnvironment) EmbeddingRuntime() bool    { return e.embedding }
func (e fakeEnvironment) UserAgent() string         { return e.userAgent }
func (e fakeEnvironment) StandaloneDisplay() bool   { return e.standalone }
func (e fakeEnvironment) IOSStandalone() bool       { return e.iosStandalone }
func (e fakeEnvironment) HasFilePicker() bool       { return e.filePicker }
func (e fakeEnvironment) HasNotificationAPI() bool  { return e.notifications }
func (e fakeEnvironment) HasBackgroundSync() bool   { return e.backgroundSync }

// nilShell is a marker bridge with no sub-bridges
type nilShell struct{}

func (nilShell) Window() WindowBridge               { return nil }
func (nilShell) Theme() ThemeBridge                 { return nil }
func (nilShell) Files() FileBridge                  { return nil }
func (nilShell) Notifications() NotificationBridge  { return nil }
func (nilShell) App() AppBridge                     { return nil }

func TestDetectWebResidual(t *testing.T) {
	caps := Detect(fakeEnvironment{})

	if !caps.IsWeb || caps.IsShell || caps.IsPWA {
		t.Errorf("Expected plain web classification, got %+v", caps)
	}
	if caps.Features.FileSystem || caps.Features.SystemTray {
		t.Errorf("Expected no shell features on plain web, got %+v", caps.Features)
	}
}

func TestDetectShellSignalsAreORed(t *testing.T) {
	cases := map[string]fakeEnvironment{
		"bridge marker":   {bridge: nilShell{}},
		"process runtime": {embedding: true},
		"user agent":      {userAgent: "Mozilla/5.0 GridShell/1.0"},
	}
	for name, env := range cases {
		caps := Detect(env)
		if !caps.IsShell {
			t.Errorf("Expected %s alone to classify as shell", name)
		}
		if caps.IsWeb || caps.IsPWA {
			t.Errorf("Expected %s to be exclusively shell, got %+v", name, caps)
		}
		if !caps.Features.SystemTray || !caps.Features.FileSystem {
			t.Errorf("Expected shell features for %s, got %+v", name, caps.Features)
		}
	}
}

func TestDetectPWA(t *testing.T) {
	if caps := Detect(fakeEnvironment{standalone: true}); !caps.IsPWA || caps.IsWeb || caps.IsShell {
		t.Errorf("Expected standalone display to classify as PWA, got %+v", caps)
	}
	if caps := Detect(fakeEnvironment{iosStandalone: true}); !caps.IsPWA {
		t.Errorf("Expected iOS standalone flag to classify as PWA, got %+v", caps)
	}

	// Shell signals take precedence so exactly one kind is active
	caps := Detect(fakeEnvironment{standalone: true, embedding: true})
	if !caps.IsShell || caps.IsPWA {
		t.Errorf("Expected shell to win over PWA, got %+v", caps)
	}
}

func TestDetectFeatureFlags(t *testing.T) {
	caps := Detect(fakeEnvironment{filePicker: true, notifications: true, backgroundSync: true})

	if !caps.Features.FileSystem {
		t.Error("Expected file picker to enable fileSystem")
	}
	if !caps.Features.Notifications {
		t.Error("Expected notification API to enable notifications")
	}
	if !caps.Features.Offline {
		t.Error("Expected background sync to enable offline")
	}
	if caps.Features.SystemTray {
		t.Error("Expected systemTray to require the shell")
	}
}

func TestDetectIsPure(t *testing.T) {
	env := fakeEnvironment{embedding: true}
	first := Detect(env)
	second := Detect(env)
	if first != second {
		t.Error("Expected detection to be a pure function of the environment")
	}

	// No memoization: a changed environment yields a changed result
	if caps := Detect(fakeEnvironment{}); caps.IsShell {
		t.Error("Expected detection to follow the descriptor, not cached state")
	}
}
