package layout

// Package layout turns a declarative dashboard layout into a rendered Fyne
// container. The grid implements fyne.Layout with explicit column/row
// placement, spans and auto-placement; the engine resolves widget ids
// against the registry and hands each instance its own scope.
