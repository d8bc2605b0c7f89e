package widgets

// Package widgets holds the built-in widget set shipped with the
// dashboard. Each widget is a WidgetDefinition pairing a manifest with a
// Render implementation; BuiltIn returns them all for registration at
// composition time.
