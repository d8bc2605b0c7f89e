package model

// Package model defines domain data structures used across the app: widget
// manifests and definitions, layout and tenant documents, platform
// capabilities, and theme state. Structures are designed for direct binding
// in the UI and explicit state transitions.
