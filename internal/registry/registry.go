package registry

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/model"
)

// Entry wraps a registered definition with bookkeeping data. Entries are
// owned by the registry and never handed out.
type entry struct {
	definition model.WidgetDefinition
	registered time.Time
	source     string
}

// Registry is an observable mapping widgetId -> WidgetDefinition. All
// operations are safe for concurrent use and never panic; absence is
// reported through (value, bool) returns. Iteration order of the snapshot
// views is unspecified and callers must not depend on it.
type Registry struct {
	mu      sync.RWMutex
	widgets map[string]entry
	changes *event.Feed[struct{}]
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		widgets: make(map[string]entry),
		changes: event.NewFeed[struct{}](),
	}
}

// Register inserts a definition, overwriting any existing entry with the
// same id. Overwriting is tolerated and logged as a warning, not an error;
// the last writer wins. Subscribers are notified after the mutation.
func (r *Registry) Register(definition model.WidgetDefinition, source string) {
	id := definition.Manifest.ID

	r.mu.Lock()
	if _, exists := r.widgets[id]; exists {
		slog.Warn("widget already registered, overwriting", "widget", id, "source", source)
	}
	r.widgets[id] = entry{definition: definition, registered: time.Now(), source: source}
	r.mu.Unlock()

	r.changes.Publish(struct{}{})
}

// RegisterAll registers definitions in order. A later duplicate within the
// batch overwrites an earlier one; subscribers are notified per element.
func (r *Registry) RegisterAll(definitions []model.WidgetDefinition, source string) {
	for _, definition := range definitions {
		r.Register(definition, source)
	}
}

// Unregister removes the entry for id and reports whether anything was
// removed. Subscribers are notified only when a removal occurred.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	_, exists := r.widgets[id]
	if exists {
		delete(r.widgets, id)
	}
	r.mu.Unlock()

	if exists {
		r.changes.Publish(struct{}{})
	}
	return exists
}

// Get returns the definition for id
func (r *Registry) Get(id string) (model.WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.widgets[id]
	return e.definition, ok
}

// GetComponent returns the renderable component for id
func (r *Registry) GetComponent(id string) (model.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.widgets[id]
	if !ok {
		return nil, false
	}
	return e.definition.Component, true
}

// GetManifest returns the manifest for id
func (r *Registry) GetManifest(id string) (model.WidgetManifest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.widgets[id]
	if !ok {
		return model.WidgetManifest{}, false
	}
	return e.definition.Manifest, true
}

// GetAll returns a snapshot of every registered definition
func (r *Registry) GetAll() []model.WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.WidgetDefinition, 0, len(r.widgets))
	for _, e := range r.widgets {
		all = append(all, e.definition)
	}
	return all
}

// GetIDs returns a snapshot of every registered widget id
func (r *Registry) GetIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.widgets))
	for id := range r.widgets {
		ids = append(ids, id)
	}
	return ids
}

// GetAllManifests returns a snapshot of every registered manifest
func (r *Registry) GetAllManifests() []model.WidgetManifest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	manifests := make([]model.WidgetManifest, 0, len(r.widgets))
	for _, e := range r.widgets {
		manifests = append(manifests, e.definition.Manifest)
	}
	return manifests
}

// Has reports whether id is registered
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.widgets[id]
	return ok
}

// Size returns the number of registered widgets
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.widgets)
}

// Clear empties the registry. Clear always notifies subscribers, even when
// the registry was already empty, unlike Register/Unregister, which only
// fire on an actual state change.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.widgets = make(map[string]entry)
	r.mu.Unlock()

	r.changes.Publish(struct{}{})
}

// FindByCategory returns definitions whose manifest category matches
// exactly, case-sensitively.
func (r *Registry) FindByCategory(category string) []model.WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []model.WidgetDefinition
	for _, e := range r.widgets {
		if e.definition.Manifest.Category == category {
			found = append(found, e.definition)
		}
	}
	return found
}

// FindByTag returns definitions carrying the exact tag
func (r *Registry) FindByTag(tag string) []model.WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []model.WidgetDefinition
	for _, e := range r.widgets {
		if e.definition.Manifest.HasTag(tag) {
			found = append(found, e.definition)
		}
	}
	return found
}

// Search returns definitions whose name or description contains the query,
// case-insensitively. Each widget appears at most once regardless of how
// many fields matched.
func (r *Registry) Search(query string) []model.WidgetDefinition {
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []model.WidgetDefinition
	for _, e := range r.widgets {
		m := e.definition.Manifest
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Description), q) {
			found = append(found, e.definition)
		}
	}
	return found
}

// Subscribe registers a listener invoked after every registry mutation.
// Listeners fire in subscription order; the returned function unsubscribes.
func (r *Registry) Subscribe(listener func()) func() {
	return r.changes.Subscribe(func(struct{}) { listener() })
}
