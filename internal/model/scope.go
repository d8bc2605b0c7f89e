package model

import "time"

// WidgetStore is the storage surface visible to a widget: namespaced,
// TTL-aware key/value access scoped to the widget's own id.
type WidgetStore interface {
	Get(key string, dest any) bool
	Set(key string, value any, ttl time.Duration) error
	Remove(key string) error
	Has(key string) bool
	Keys() []string
	Clear() error
}

// WidgetScope is the per-instance context a widget renders against: its
// resolved manifest, effective config, the ambient theme, capabilities and
// tenant, and its own storage. The scope is the unit of isolation: a
// widget must never reach outside it to query global state.
type WidgetScope struct {
	Manifest     WidgetManifest
	InstanceID   string
	Config       map[string]any
	Theme        Theme
	Capabilities PlatformCapabilities
	TenantID     string
	Storage      WidgetStore

	cleanups []func()
}

// RegisterCleanup records fn to run when this instance is torn down.
// Widgets use it to stop tickers, close connections and unsubscribe.
func (s *WidgetScope) RegisterCleanup(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Cleanup runs the registered cleanups in reverse registration order.
// Called by whoever owns the instance lifecycle; safe to call twice.
func (s *WidgetScope) Cleanup() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

// ConfigString returns the string config value for key, falling back when
// the key is absent or holds a different type.
func (s *WidgetScope) ConfigString(key, fallback string) string {
	if v, ok := s.Config[key].(string); ok {
		return v
	}
	return fallback
}

// ConfigBool returns the boolean config value for key with a fallback
func (s *WidgetScope) ConfigBool(key string, fallback bool) bool {
	if v, ok := s.Config[key].(bool); ok {
		return v
	}
	return fallback
}
