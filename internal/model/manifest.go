package model

import (
	"fyne.io/fyne/v2"
)

// PermissionTier represents a graded capability requirement
type PermissionTier string

const (
	// PermissionNone means the capability is not requested
	PermissionNone PermissionTier = "none"

	// PermissionLimited means restricted access (e.g. same-origin network)
	PermissionLimited PermissionTier = "limited"

	// PermissionFull means unrestricted access
	PermissionFull PermissionTier = "full"
)

// permissionRank orders tiers for AtLeast comparisons
func permissionRank(t PermissionTier) int {
	switch t {
	case PermissionLimited:
		return 1
	case PermissionFull:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether the tier grants at least the required level
func (t PermissionTier) AtLeast(required PermissionTier) bool {
	return permissionRank(t) >= permissionRank(required)
}

// WidgetPermissions declares what a widget is allowed to do.
// Zero value requests nothing.
type WidgetPermissions struct {
	Storage       PermissionTier `yaml:"storage,omitempty" json:"storage,omitempty"`
	Network       PermissionTier `yaml:"network,omitempty" json:"network,omitempty"`
	Notifications PermissionTier `yaml:"notifications,omitempty" json:"notifications,omitempty"`
	Clipboard     bool           `yaml:"clipboard,omitempty" json:"clipboard,omitempty"`
	Geolocation   bool           `yaml:"geolocation,omitempty" json:"geolocation,omitempty"`
	Media         bool           `yaml:"media,omitempty" json:"media,omitempty"`
}

// SizeConstraints bounds a widget's footprint in grid units
type SizeConstraints struct {
	MinWidth  int `yaml:"minWidth,omitempty" json:"minWidth,omitempty"`
	MinHeight int `yaml:"minHeight,omitempty" json:"minHeight,omitempty"`
	MaxWidth  int `yaml:"maxWidth,omitempty" json:"maxWidth,omitempty"`
	MaxHeight int `yaml:"maxHeight,omitempty" json:"maxHeight,omitempty"`
}

// WidgetManifest is the static descriptor of a widget kind. Identity is ID;
// a manifest is immutable once registered.
type WidgetManifest struct {
	ID            string             `yaml:"id" json:"id"`
	Name          string             `yaml:"name" json:"name"`
	Description   string             `yaml:"description" json:"description"`
	Version       string             `yaml:"version" json:"version"`
	Author        string             `yaml:"author,omitempty" json:"author,omitempty"`
	Icon          string             `yaml:"icon,omitempty" json:"icon,omitempty"`
	Category      string             `yaml:"category,omitempty" json:"category,omitempty"`
	Tags          []string           `yaml:"tags,omitempty" json:"tags,omitempty"`
	Permissions   *WidgetPermissions `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	DefaultConfig map[string]any     `yaml:"defaultConfig,omitempty" json:"defaultConfig,omitempty"`
	Size          *SizeConstraints   `yaml:"size,omitempty" json:"size,omitempty"`
}

// HasTag reports whether the manifest carries the exact tag
func (m *WidgetManifest) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Component is the single render contract a widget must implement.
// A widget is anything that can produce a visual tree for its scope.
type Component interface {
	Render(scope *WidgetScope) fyne.CanvasObject
}

// ComponentFunc adapts a plain function to the Component interface
type ComponentFunc func(scope *WidgetScope) fyne.CanvasObject

// Render implements Component
func (f ComponentFunc) Render(scope *WidgetScope) fyne.CanvasObject {
	return f(scope)
}

// WidgetDefinition pairs a renderable component with its manifest.
// Created by widget authors, consumed by the registry.
type WidgetDefinition struct {
	Component Component
	Manifest  WidgetManifest
}
