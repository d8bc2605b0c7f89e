package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gridhost/widget-dashboard/internal/event"
)

// KeyPrefix builds the backend key for a widget-scoped logical key.
// Every logical key k for widget w is stored under "widget:{w}:{k}";
// namespaces never cross widget ids.
func KeyPrefix(widgetID string) string {
	return "widget:" + widgetID + ":"
}

// Item is the stored envelope around a value. Values must be
// JSON-serializable; ExpiresAt of zero means the entry never expires.
type Item struct {
	Value     json.RawMessage `json:"value"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
	ExpiresAt int64           `json:"expiresAt,omitempty"`
}

// ChangeKind describes a storage mutation
type ChangeKind string

const (
	// ChangeSet means a key was written
	ChangeSet ChangeKind = "set"

	// ChangeRemove means a key was deleted
	ChangeRemove ChangeKind = "remove"

	// ChangeClear means the widget's whole namespace was emptied
	ChangeClear ChangeKind = "clear"
)

// Change is delivered to storage subscribers after the mutation applied
type Change struct {
	Kind ChangeKind
	Key  string
}

// Store is widget-scoped, TTL-aware key/value storage over a Backend.
// Reads degrade gracefully: a miss, an expired entry and malformed stored
// data all report absence. Writes propagate backend errors to the caller.
type Store struct {
	widgetID string
	backend  Backend
	changes  *event.Feed[Change]
	now      func() time.Time
}

// probeKey is the throwaway key written during backend probing
const probeKey = "__storage_probe__"

// New creates storage for one widget. The preferred backend is probed with
// a throwaway write/delete at construction; when it is missing or not
// writable the store silently falls back to an in-process memory backend.
// The probe runs per construction, not globally, since availability can
// differ by context.
func New(widgetID string, preferred Backend) *Store {
	backend := preferred
	if backend == nil || !writable(backend) {
		if backend != nil {
			slog.Warn("persistent storage backend not writable, using memory fallback", "widget", widgetID)
		}
		backend = NewMemoryBackend()
	}
	return &Store{
		widgetID: widgetID,
		backend:  backend,
		changes:  event.NewFeed[Change](),
		now:      time.Now,
	}
}

// writable probes a backend with a throwaway write/delete
func writable(b Backend) bool {
	if err := b.Set(probeKey, "1"); err != nil {
		return false
	}
	return b.Delete(probeKey) == nil
}

func (s *Store) fullKey(key string) string {
	return KeyPrefix(s.widgetID) + key
}

// Get reads the value for key into dest and reports presence. An absent
// key, a malformed stored envelope and an expired entry all return false;
// in the expired case the stale entry is deleted as a side effect.
func (s *Store) Get(key string, dest any) bool {
	raw, ok := s.backend.Get(s.fullKey(key))
	if !ok {
		return false
	}

	var item Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return false
	}

	// Lazy eviction on access. The boundary is inclusive: an entry read at
	// exactly its expiry instant is still valid.
	if item.ExpiresAt != 0 && s.now().UnixMilli() > item.ExpiresAt {
		_ = s.backend.Delete(s.fullKey(key))
		return false
	}

	if dest == nil {
		return true
	}
	if err := json.Unmarshal(item.Value, dest); err != nil {
		return false
	}
	return true
}

// Set stores value under key. A positive ttl makes the entry expire at
// now+ttl; otherwise it never expires.
func (s *Store) Set(key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}

	now := s.now().UnixMilli()
	item := Item{Value: encoded, CreatedAt: now, UpdatedAt: now}
	if ttl > 0 {
		item.ExpiresAt = now + ttl.Milliseconds()
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode storage item for %q: %w", key, err)
	}
	if err := s.backend.Set(s.fullKey(key), string(raw)); err != nil {
		return err
	}

	s.changes.Publish(Change{Kind: ChangeSet, Key: key})
	return nil
}

// Remove deletes key from the widget's namespace
func (s *Store) Remove(key string) error {
	if err := s.backend.Delete(s.fullKey(key)); err != nil {
		return err
	}
	s.changes.Publish(Change{Kind: ChangeRemove, Key: key})
	return nil
}

// Has reports whether key holds a live value
func (s *Store) Has(key string) bool {
	return s.Get(key, nil)
}

// Keys returns the widget's logical keys, prefixes stripped. Keys of other
// widgets sharing the backend are never visible.
func (s *Store) Keys() []string {
	prefix := KeyPrefix(s.widgetID)
	var keys []string
	for i := 0; i < s.backend.Len(); i++ {
		k, ok := s.backend.Key(i)
		if !ok {
			continue
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, strings.TrimPrefix(k, prefix))
		}
	}
	return keys
}

// Clear removes every key in the widget's namespace, sequentially. A
// failure mid-clear leaves earlier deletions in place; nothing is rolled
// back.
func (s *Store) Clear() error {
	for _, key := range s.Keys() {
		if err := s.backend.Delete(s.fullKey(key)); err != nil {
			return fmt.Errorf("clear %q: %w", key, err)
		}
	}
	s.changes.Publish(Change{Kind: ChangeClear})
	return nil
}

// Subscribe registers a listener for storage changes, delivered strictly
// after the mutation applied. Returns the unsubscribe function.
func (s *Store) Subscribe(listener func(Change)) func() {
	return s.changes.Subscribe(listener)
}
