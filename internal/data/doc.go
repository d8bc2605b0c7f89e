package data

// Package data provides the stateful request/subscription primitives
// consumed by widget implementations: a REST client with TTL caching and
// request superseding, a live-socket connection with bounded reconnection,
// and an fsnotify-backed file watcher. All blocking operations take a
// context; cancellation is the structured teardown path.
