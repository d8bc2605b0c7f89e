package ui

// Package ui contains the Fyne-based desktop user interface for the
// dashboard. It wires the registry, platform provider and layout engine
// into a window with a header, layout selector, and settings. All UI
// strings are localized via Localization.
