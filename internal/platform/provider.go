package platform

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/registry"
)

// ThemeChangeRequest is the broadcast signal widgets publish to request a
// theme change without holding a provider reference. The provider is the
// sole listener that turns it into a mode transition.
type ThemeChangeRequest struct {
	Mode model.ThemeMode
}

// SystemThemeSource reports the OS-level color-scheme preference
type SystemThemeSource interface {
	Current() model.ThemeValue
	OnChanged(callback func(model.ThemeValue)) (unsubscribe func())
}

// ProviderOptions configures a Provider. Everything is optional except
// that a nil Environment defaults to the plain web descriptor.
type ProviderOptions struct {
	// DefaultTheme is the initial mode; invalid or empty means system
	DefaultTheme model.ThemeMode

	// TenantID is the active tenant, "default" when empty
	TenantID string

	// Registry is the widget registry reference propagated to the tree
	Registry *registry.Registry

	// Environment describes the host; nil means plain web
	Environment Environment

	// Capabilities, when set, replaces detection wholesale (testing)
	Capabilities *model.PlatformCapabilities

	// SystemTheme supplies the OS preference signal; nil means unavailable
	SystemTheme SystemThemeSource

	// ApplyResolved is the visual root marker update, invoked synchronously
	// on every resolved-theme change so styling keyed on the value applies
	// immediately.
	ApplyResolved func(model.ThemeValue)

	// ThemeRequests is the broadcast feed carrying widget-originated
	// theme-change requests.
	ThemeRequests *event.Feed[ThemeChangeRequest]
}

// Provider is the process-wide source of truth for theme, capabilities,
// tenant id and registry reference. It synchronizes bidirectionally with
// the host shell's native theme when one is present.
type Provider struct {
	mu       sync.RWMutex
	mode     model.ThemeMode
	resolved model.ThemeValue
	caps     model.PlatformCapabilities
	loading  bool

	tenantID string
	registry *registry.Registry
	bridge   HostShell
	system   SystemThemeSource
	apply    func(model.ThemeValue)

	settled chan struct{}
	unsubs  []func()
}

// NewProvider builds the platform context and wires its transition
// sources: the system preference signal, the host-native theme signal and
// the widget request feed. Capability detection runs asynchronously;
// readers before settlement observe the conservative web default.
func NewProvider(opts ProviderOptions) *Provider {
	env := opts.Environment
	if env == nil {
		env = WebEnvironment{}
	}

	mode := opts.DefaultTheme
	if !mode.IsValid() {
		mode = model.ThemeModeSystem
	}

	tenantID := opts.TenantID
	if tenantID == "" {
		tenantID = "default"
	}

	p := &Provider{
		mode:     mode,
		tenantID: tenantID,
		registry: opts.Registry,
		bridge:   env.HostBridge(),
		system:   opts.SystemTheme,
		apply:    opts.ApplyResolved,
		settled:  make(chan struct{}),
	}

	p.resolved = model.ResolveTheme(mode, p.systemValue())
	p.applyResolved(p.resolved)

	if opts.Capabilities != nil {
		// Forced override replaces detection wholesale
		p.caps = *opts.Capabilities
		close(p.settled)
	} else {
		p.caps = model.DefaultCapabilities()
		p.loading = true
		go func() {
			caps := Detect(env)
			p.mu.Lock()
			p.caps = caps
			p.loading = false
			p.mu.Unlock()
			close(p.settled)
		}()
	}

	if p.system != nil {
		p.unsubs = append(p.unsubs, p.system.OnChanged(p.handleSystemChange))
	}
	if p.bridge != nil {
		if themes := p.bridge.Theme(); themes != nil {
			p.unsubs = append(p.unsubs, themes.OnChanged(p.handleHostTheme))
		}
	}
	if opts.ThemeRequests != nil {
		p.unsubs = append(p.unsubs, opts.ThemeRequests.Subscribe(func(req ThemeChangeRequest) {
			p.SetTheme(req.Mode)
		}))
	}

	return p
}

func (p *Provider) systemValue() model.ThemeValue {
	if p.system == nil {
		// Signal unavailable, e.g. non-interactive contexts
		return model.ThemeLight
	}
	return p.system.Current()
}

func (p *Provider) applyResolved(value model.ThemeValue) {
	if p.apply != nil {
		p.apply(value)
	}
}

// Theme returns the current theme state
func (p *Provider) Theme() model.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return model.Theme{Mode: p.mode, Resolved: p.resolved}
}

// SetTheme changes the user's theme intent, recomputes the resolved value
// and applies the visual root marker synchronously. The new mode is also
// pushed to the host shell fire-and-forget so the host's theme subsystem
// and the in-app state never diverge.
func (p *Provider) SetTheme(mode model.ThemeMode) {
	if !mode.IsValid() {
		slog.Warn("ignoring invalid theme mode", "mode", string(mode))
		return
	}

	p.mu.Lock()
	p.mode = mode
	p.resolved = model.ResolveTheme(mode, p.systemValue())
	resolved := p.resolved
	p.mu.Unlock()

	p.applyResolved(resolved)
	p.pushModeToHost(mode)
}

// handleSystemChange reacts to OS preference flips, honored only while the
// user intent is system.
func (p *Provider) handleSystemChange(value model.ThemeValue) {
	p.mu.Lock()
	if p.mode != model.ThemeModeSystem {
		p.mu.Unlock()
		return
	}
	p.resolved = value
	p.mu.Unlock()

	p.applyResolved(value)
}

// handleHostTheme mirrors a host-native theme report. The host value wins
// even when mode is not system, so the window never drifts from the OS
// chrome it is embedded in.
// TODO: revisit whether a host report should override an explicit
// non-system mode or only inform.
func (p *Provider) handleHostTheme(value model.ThemeValue) {
	p.mu.Lock()
	p.resolved = value
	p.mu.Unlock()

	p.applyResolved(value)
}

// pushModeToHost informs the host shell of the new desired mode.
// Fire-and-forget; failure to reach the host is not surfaced to the UI.
func (p *Provider) pushModeToHost(mode model.ThemeMode) {
	if p.bridge == nil {
		return
	}
	themes := p.bridge.Theme()
	if themes == nil {
		return
	}
	go func() {
		if err := themes.Set(mode); err != nil {
			slog.Debug("host theme sync failed", "error", err)
		}
	}()
}

// Capabilities returns the capability descriptor, the conservative web
// default until detection settles.
func (p *Provider) Capabilities() model.PlatformCapabilities {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.caps
}

// Loading reports whether capability detection is still in flight
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Settled closes once capability detection has completed
func (p *Provider) Settled() <-chan struct{} {
	return p.settled
}

// TenantID returns the active tenant id
func (p *Provider) TenantID() string {
	return p.tenantID
}

// Registry returns the registry reference, which may be nil on an
// unconfigured provider.
func (p *Provider) Registry() *registry.Registry {
	return p.registry
}

// HostShell returns the host bridge, nil in the plain web case
func (p *Provider) HostShell() HostShell {
	return p.bridge
}

// Close detaches the provider from its signal sources
func (p *Provider) Close() {
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
}

type ctxKey struct{}

// NewContext attaches the provider to a context for propagation down the
// render tree.
func NewContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the provider attached to ctx. Calling it outside an
// active provider scope is a wiring bug, so it panics rather than
// defaulting silently.
func FromContext(ctx context.Context) *Provider {
	p, ok := ctx.Value(ctxKey{}).(*Provider)
	if !ok {
		panic("platform: FromContext called outside a provider scope")
	}
	return p
}
