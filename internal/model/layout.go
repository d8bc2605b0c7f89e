package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Grid defaults applied when the layout document leaves them unset
const (
	DefaultGridColumns = 12
	DefaultGridGap     = 16
)

// WidgetLayoutItem is one placement within a layout. WidgetID is resolved
// against the registry at render time, not at parse time; an unresolved id
// is a displayable state, not an error.
type WidgetLayoutItem struct {
	WidgetID   string         `yaml:"widgetId" json:"widgetId"`
	InstanceID string         `yaml:"instanceId,omitempty" json:"instanceId,omitempty"`
	Column     int            `yaml:"column,omitempty" json:"column,omitempty"`
	Row        int            `yaml:"row,omitempty" json:"row,omitempty"`
	ColSpan    int            `yaml:"colSpan,omitempty" json:"colSpan,omitempty"`
	RowSpan    int            `yaml:"rowSpan,omitempty" json:"rowSpan,omitempty"`
	Config     map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// LayoutConfig is a declarative dashboard layout: grid geometry plus an
// ordered sequence of widget placements. Treated as read-only during a
// render pass.
type LayoutConfig struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Columns     int                `yaml:"columns,omitempty" json:"columns,omitempty"`
	Gap         int                `yaml:"gap,omitempty" json:"gap,omitempty"`
	Widgets     []WidgetLayoutItem `yaml:"widgets" json:"widgets"`
}

// TenantFeatures are per-tenant feature flags
type TenantFeatures struct {
	CustomizeDashboard bool `yaml:"customizeDashboard,omitempty" json:"customizeDashboard,omitempty"`
	Marketplace        bool `yaml:"marketplace,omitempty" json:"marketplace,omitempty"`
	DarkMode           bool `yaml:"darkMode,omitempty" json:"darkMode,omitempty"`
}

// TenantTheme carries per-tenant branding colors
type TenantTheme struct {
	PrimaryColor string `yaml:"primaryColor,omitempty" json:"primaryColor,omitempty"`
	AccentColor  string `yaml:"accentColor,omitempty" json:"accentColor,omitempty"`
}

// TenantConfig selects layouts and branding for one customer context
type TenantConfig struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Logo          string          `yaml:"logo,omitempty" json:"logo,omitempty"`
	DefaultLayout string          `yaml:"defaultLayout" json:"defaultLayout"`
	Layouts       []string        `yaml:"layouts,omitempty" json:"layouts,omitempty"`
	Features      *TenantFeatures `yaml:"features,omitempty" json:"features,omitempty"`
	Theme         *TenantTheme    `yaml:"theme,omitempty" json:"theme,omitempty"`
}

// NewInstanceID generates a unique instance id for a placement of widgetID.
// The id always contains the widget id so placements stay traceable in logs.
func NewInstanceID(widgetID string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%d-%s", widgetID, time.Now().UnixMilli(), suffix)
}

// NormalizeLayout backfills missing instance ids. Items that already carry
// an instance id are left untouched. The input is not mutated.
func NormalizeLayout(layout LayoutConfig) LayoutConfig {
	normalized := layout
	normalized.Widgets = make([]WidgetLayoutItem, len(layout.Widgets))
	for i, item := range layout.Widgets {
		if item.InstanceID == "" {
			item.InstanceID = NewInstanceID(item.WidgetID)
		}
		normalized.Widgets[i] = item
	}
	return normalized
}

// ValidateLayout reports whether a decoded document is a usable layout:
// non-empty id and name, and every widget entry carrying a widgetId.
// Never panics; malformed input simply yields false.
func ValidateLayout(doc map[string]any) bool {
	if doc == nil {
		return false
	}
	if s, ok := doc["id"].(string); !ok || s == "" {
		return false
	}
	if s, ok := doc["name"].(string); !ok || s == "" {
		return false
	}
	widgets, ok := doc["widgets"].([]any)
	if !ok {
		return false
	}
	for _, w := range widgets {
		entry, ok := w.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := entry["widgetId"].(string); !ok {
			return false
		}
	}
	return true
}

// ValidateTenant reports whether a decoded document is a usable tenant:
// non-empty id, name and defaultLayout.
func ValidateTenant(doc map[string]any) bool {
	if doc == nil {
		return false
	}
	for _, field := range []string{"id", "name", "defaultLayout"} {
		if s, ok := doc[field].(string); !ok || s == "" {
			return false
		}
	}
	return true
}

// MergeConfig shallow-merges manifest defaults with instance overrides.
// Instance keys win on collision; unrelated default keys survive. One level
// deep only, nested maps are replaced wholesale.
func MergeConfig(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
