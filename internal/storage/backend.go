package storage

import "sync"

// Backend is the persistent key/value contract widget storage runs on:
// get/set/delete by string key plus key enumeration by count and index.
// Read misses and read failures are both reported as absence; only writes
// surface errors.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Len() int
	Key(i int) (string, bool)
}

// MemoryBackend is the in-process fallback used when no persistent backend
// is writable. Contents do not survive the process.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]string
	keys  []string
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

// Get returns the value for key
func (b *MemoryBackend) Get(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.items[key]
	return v, ok
}

// Set stores value under key
func (b *MemoryBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.items[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.items[key] = value
	return nil
}

// Delete removes key
func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.items[key]; !exists {
		return nil
	}
	delete(b.items, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored keys
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Key returns the key at index i
func (b *MemoryBackend) Key(i int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.keys) {
		return "", false
	}
	return b.keys[i], true
}
