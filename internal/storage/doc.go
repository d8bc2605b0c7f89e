package storage

// Package storage implements namespaced, TTL-aware key/value persistence
// scoped to one widget id. Values live behind a pluggable Backend; the
// default persistent backend is BadgerDB with an in-process map fallback
// when the persistent backend is unavailable.
