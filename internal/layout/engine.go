package layout

import (
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/registry"
	"github.com/gridhost/widget-dashboard/internal/storage"
)

// ScopeSource supplies the ambient context every widget scope carries.
// The platform provider satisfies it.
type ScopeSource interface {
	Theme() model.Theme
	Capabilities() model.PlatformCapabilities
	TenantID() string
}

// Engine renders declarative layouts into Fyne containers. Widget storage
// is namespaced per widget id and shared between instances of the same
// widget, so stores are created once and reused across render passes.
type Engine struct {
	registry *registry.Registry
	scopes   ScopeSource
	backend  storage.Backend

	mu     sync.Mutex
	stores map[string]*storage.Store
	active []*model.WidgetScope
}

// NewEngine creates a render engine. A nil registry is tolerated and
// surfaces as an explanatory message instead of widgets.
func NewEngine(reg *registry.Registry, scopes ScopeSource, backend storage.Backend) *Engine {
	return &Engine{
		registry: reg,
		scopes:   scopes,
		backend:  backend,
		stores:   make(map[string]*storage.Store),
	}
}

// storeFor returns the shared store for one widget id
func (e *Engine) storeFor(widgetID string) *storage.Store {
	e.mu.Lock()
	defer e.mu.Unlock()

	store, ok := e.stores[widgetID]
	if !ok {
		store = storage.New(widgetID, e.backend)
		e.stores[widgetID] = store
	}
	return store
}

// Render resolves cfg against the registry and returns the dashboard
// content. Unresolved widget ids render as placeholder cells in their
// configured position; they never abort the pass.
func (e *Engine) Render(cfg model.LayoutConfig) fyne.CanvasObject {
	// Instances from the previous pass are torn down first
	e.Teardown()

	if e.registry == nil {
		label := widget.NewLabel("No widget registry is configured for this dashboard.")
		label.Alignment = fyne.TextAlignCenter
		return container.NewCenter(label)
	}
	if len(cfg.Widgets) == 0 {
		return EmptyState()
	}

	normalized := model.NormalizeLayout(cfg)
	grid := NewGrid(normalized.Columns, float32(gapOrDefault(normalized.Gap)))

	objects := make([]fyne.CanvasObject, 0, len(normalized.Widgets))
	for _, item := range normalized.Widgets {
		obj := e.renderItem(item)
		grid.Place(obj, Placement{
			Column:  item.Column,
			Row:     item.Row,
			ColSpan: item.ColSpan,
			RowSpan: item.RowSpan,
		})
		objects = append(objects, obj)
	}

	return container.New(grid, objects...)
}

func gapOrDefault(gap int) int {
	if gap <= 0 {
		return model.DefaultGridGap
	}
	return gap
}

// renderItem resolves one placement into a canvas object
func (e *Engine) renderItem(item model.WidgetLayoutItem) fyne.CanvasObject {
	definition, ok := e.registry.Get(item.WidgetID)
	if !ok {
		slog.Warn("layout references unregistered widget", "widgetId", item.WidgetID)
		return notFoundCell(item.WidgetID)
	}

	scope := &model.WidgetScope{
		Manifest:     definition.Manifest,
		InstanceID:   item.InstanceID,
		Config:       model.MergeConfig(definition.Manifest.DefaultConfig, item.Config),
		Theme:        e.scopes.Theme(),
		Capabilities: e.scopes.Capabilities(),
		TenantID:     e.scopes.TenantID(),
		Storage:      e.storeFor(item.WidgetID),
	}

	e.mu.Lock()
	e.active = append(e.active, scope)
	e.mu.Unlock()

	return definition.Component.Render(scope)
}

// Teardown runs the cleanups of every instance from the last render pass.
// Render calls it implicitly; call it directly when discarding the engine.
func (e *Engine) Teardown() {
	e.mu.Lock()
	scopes := e.active
	e.active = nil
	e.mu.Unlock()

	for _, scope := range scopes {
		scope.Cleanup()
	}
}

// notFoundCell fills the placement of an unresolved widget id
func notFoundCell(widgetID string) fyne.CanvasObject {
	message := widget.NewLabel(fmt.Sprintf("Widget %q is not registered.", widgetID))
	message.Wrapping = fyne.TextWrapWord
	return widget.NewCard("Widget not available", "", message)
}

// EmptyState is shown when the active layout places no widgets
func EmptyState() fyne.CanvasObject {
	icon := widget.NewIcon(theme.ContentAddIcon())
	title := widget.NewLabel("This dashboard is empty")
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter
	hint := widget.NewLabel("Add widgets to the layout to get started.")
	hint.Alignment = fyne.TextAlignCenter

	return container.NewCenter(container.NewVBox(
		container.NewCenter(icon),
		title,
		hint,
	))
}
