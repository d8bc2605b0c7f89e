package platform

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/registry"
)

// fakeSystemSource simulates the OS color-scheme preference
type fakeSystemSource struct {
	mu      sync.Mutex
	value   model.ThemeValue
	changes *event.Feed[model.ThemeValue]
}

func newFakeSystemSource(value model.ThemeValue) *fakeSystemSource {
	return &fakeSystemSource{value: value, changes: event.NewFeed[model.ThemeValue]()}
}

func (s *fakeSystemSource) Current() model.ThemeValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *fakeSystemSource) OnChanged(callback func(model.ThemeValue)) func() {
	return s.changes.Subscribe(callback)
}

func (s *fakeSystemSource) flip(value model.ThemeValue) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	s.changes.Publish(value)
}

// fakeThemeBridge records host theme sets and can report native changes
type fakeThemeBridge struct {
	sets    chan model.ThemeMode
	changes *event.Feed[model.ThemeValue]
}

func newFakeThemeBridge() *fakeThemeBridge {
	return &fakeThemeBridge{
		sets:    make(chan model.ThemeMode, 8),
		changes: event.NewFeed[model.ThemeValue](),
	}
}

func (b *fakeThemeBridge) Get() (model.ThemeValue, error) { return model.ThemeLight, nil }

func (b *fakeThemeBridge) Set(mode model.ThemeMode) error {
	b.sets <- mode
	return nil
}

func (b *fakeThemeBridge) OnChanged(callback func(model.ThemeValue)) func() {
	return b.changes.Subscribe(callback)
}

// fakeShell exposes only the theme bridge
type fakeShell struct {
	theme *fakeThemeBridge
}

func (s *fakeShell) Window() WindowBridge              { return nil }
func (s *fakeShell) Theme() ThemeBridge                { return s.theme }
func (s *fakeShell) Files() FileBridge                 { return nil }
func (s *fakeShell) Notifications() NotificationBridge { return nil }
func (s *fakeShell) App() AppBridge                    { return nil }

func forcedWebCaps() *model.PlatformCapabilities {
	caps := model.DefaultCapabilities()
	return &caps
}

func TestThemeStateMachine(t *testing.T) {
	system := newFakeSystemSource(model.ThemeDark)

	var applied []model.ThemeValue
	p := NewProvider(ProviderOptions{
		DefaultTheme:  model.ThemeModeSystem,
		Capabilities:  forcedWebCaps(),
		SystemTheme:   system,
		ApplyResolved: func(v model.ThemeValue) { applied = append(applied, v) },
	})
	defer p.Close()

	if theme := p.Theme(); theme.Mode != model.ThemeModeSystem || theme.Resolved != model.ThemeDark {
		t.Errorf("Expected system/dark initial state, got %+v", theme)
	}
	if len(applied) != 1 || applied[0] != model.ThemeDark {
		t.Errorf("Expected initial resolved value to be applied, got %v", applied)
	}

	p.SetTheme(model.ThemeModeLight)
	if theme := p.Theme(); theme.Mode != model.ThemeModeLight || theme.Resolved != model.ThemeLight {
		t.Errorf("Expected light/light after SetTheme, got %+v", theme)
	}

	// OS flips have no effect while an explicit mode is active
	system.flip(model.ThemeLight)
	system.flip(model.ThemeDark)
	if theme := p.Theme(); theme.Resolved != model.ThemeLight {
		t.Errorf("Expected OS flip to be ignored in light mode, got %+v", theme)
	}

	// Back in system mode the OS preference takes over again
	p.SetTheme(model.ThemeModeSystem)
	if theme := p.Theme(); theme.Resolved != model.ThemeDark {
		t.Errorf("Expected system mode to resolve to OS dark, got %+v", theme)
	}
	system.flip(model.ThemeLight)
	if theme := p.Theme(); theme.Resolved != model.ThemeLight {
		t.Errorf("Expected OS flip to apply in system mode, got %+v", theme)
	}
}

func TestThemeDefaultsLightWithoutSystemSignal(t *testing.T) {
	p := NewProvider(ProviderOptions{Capabilities: forcedWebCaps()})
	defer p.Close()

	theme := p.Theme()
	if theme.Mode != model.ThemeModeSystem || theme.Resolved != model.ThemeLight {
		t.Errorf("Expected system/light without an OS signal, got %+v", theme)
	}
}

func TestHostThemeAlwaysWins(t *testing.T) {
	bridge := newFakeThemeBridge()
	p := NewProvider(ProviderOptions{
		DefaultTheme: model.ThemeModeLight,
		Capabilities: forcedWebCaps(),
		Environment:  &DesktopEnvironment{Bridge: &fakeShell{theme: bridge}},
	})
	defer p.Close()

	// A host-native report overrides even an explicit non-system mode
	bridge.changes.Publish(model.ThemeDark)

	theme := p.Theme()
	if theme.Resolved != model.ThemeDark {
		t.Errorf("Expected host report to win, got %+v", theme)
	}
	if theme.Mode != model.ThemeModeLight {
		t.Errorf("Expected mode to stay light, got %+v", theme)
	}
}

func TestModeChangesArePushedToHost(t *testing.T) {
	bridge := newFakeThemeBridge()
	p := NewProvider(ProviderOptions{
		Capabilities: forcedWebCaps(),
		Environment:  &DesktopEnvironment{Bridge: &fakeShell{theme: bridge}},
	})
	defer p.Close()

	p.SetTheme(model.ThemeModeDark)

	select {
	case mode := <-bridge.sets:
		if mode != model.ThemeModeDark {
			t.Errorf("Expected dark pushed to host, got %s", mode)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected host to be informed of the mode change")
	}
}

func TestWidgetThemeRequestFeed(t *testing.T) {
	requests := event.NewFeed[ThemeChangeRequest]()
	p := NewProvider(ProviderOptions{
		Capabilities:  forcedWebCaps(),
		ThemeRequests: requests,
	})
	defer p.Close()

	requests.Publish(ThemeChangeRequest{Mode: model.ThemeModeDark})

	if theme := p.Theme(); theme.Mode != model.ThemeModeDark || theme.Resolved != model.ThemeDark {
		t.Errorf("Expected broadcast request to change the mode, got %+v", theme)
	}

	// Invalid modes are ignored, not applied
	requests.Publish(ThemeChangeRequest{Mode: "neon"})
	if theme := p.Theme(); theme.Mode != model.ThemeModeDark {
		t.Errorf("Expected invalid request to be ignored, got %+v", theme)
	}
}

func TestForcedCapabilitiesReplaceDetection(t *testing.T) {
	forced := model.PlatformCapabilities{
		IsShell:  true,
		Features: model.PlatformFeatures{SystemTray: true},
	}
	p := NewProvider(ProviderOptions{
		Capabilities: &forced,
		Environment:  WebEnvironment{},
	})
	defer p.Close()

	if p.Loading() {
		t.Error("Expected no loading phase with forced capabilities")
	}
	if caps := p.Capabilities(); caps != forced {
		t.Errorf("Expected forced capabilities verbatim, got %+v", caps)
	}
}

func TestAsyncDetectionSettles(t *testing.T) {
	p := NewProvider(ProviderOptions{Environment: fakeEnvironment{embedding: true}})
	defer p.Close()

	select {
	case <-p.Settled():
	case <-time.After(2 * time.Second):
		t.Fatal("Expected detection to settle")
	}

	if p.Loading() {
		t.Error("Expected loading to be false after settlement")
	}
	if caps := p.Capabilities(); !caps.IsShell {
		t.Errorf("Expected detected shell capabilities, got %+v", caps)
	}
}

func TestProviderPropagatesTenantAndRegistry(t *testing.T) {
	r := registry.New()
	p := NewProvider(ProviderOptions{
		Capabilities: forcedWebCaps(),
		TenantID:     "acme",
		Registry:     r,
	})
	defer p.Close()

	if p.TenantID() != "acme" {
		t.Errorf("Expected tenant acme, got %q", p.TenantID())
	}
	if p.Registry() != r {
		t.Error("Expected injected registry reference")
	}
}

func TestFromContextPanicsOutsideProviderScope(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected FromContext to panic outside a provider scope")
		}
	}()
	FromContext(context.Background())
}

func TestFromContextRoundTrip(t *testing.T) {
	p := NewProvider(ProviderOptions{Capabilities: forcedWebCaps()})
	defer p.Close()

	ctx := NewContext(context.Background(), p)
	if FromContext(ctx) != p {
		t.Error("Expected provider round trip through context")
	}
}
