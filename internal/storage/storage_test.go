package storage

import (
	"errors"
	"testing"
	"time"
)

// failingBackend refuses every write so the probe falls back to memory
type failingBackend struct{}

func (failingBackend) Get(string) (string, bool) { return "", false }
func (failingBackend) Set(string, string) error  { return errors.New("backend unavailable") }
func (failingBackend) Delete(string) error       { return errors.New("backend unavailable") }
func (failingBackend) Len() int                  { return 0 }
func (failingBackend) Key(int) (string, bool)    { return "", false }

func TestSetGetRoundTrip(t *testing.T) {
	store := New("notes", NewMemoryBackend())

	if err := store.Set("draft", "hello", 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var got string
	if !store.Get("draft", &got) {
		t.Fatal("Expected draft to be present")
	}
	if got != "hello" {
		t.Errorf("Expected 'hello', got %q", got)
	}

	type payload struct {
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}
	if err := store.Set("state", payload{Count: 3, Tags: []string{"a", "b"}}, 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var p payload
	if !store.Get("state", &p) || p.Count != 3 || len(p.Tags) != 2 {
		t.Errorf("Expected struct round trip, got %+v", p)
	}
}

func TestGetMissingKey(t *testing.T) {
	store := New("notes", NewMemoryBackend())

	var got string
	if store.Get("missing", &got) {
		t.Error("Expected missing key to report absence")
	}
}

func TestTTLExpiryRemovesEntry(t *testing.T) {
	backend := NewMemoryBackend()
	store := New("notes", backend)

	current := time.UnixMilli(1_000_000)
	store.now = func() time.Time { return current }

	if err := store.Set("session", "token", 5*time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var got string
	if !store.Get("session", &got) {
		t.Fatal("Expected fresh entry to be present")
	}

	// Advance past the TTL; the read must miss and evict the stale entry
	// from the backend as an observable side effect.
	current = current.Add(5*time.Second + time.Millisecond)
	if store.Get("session", &got) {
		t.Error("Expected expired entry to report absence")
	}
	if _, ok := backend.Get(KeyPrefix("notes") + "session"); ok {
		t.Error("Expected expired entry to be deleted from the backend")
	}
}

func TestTTLBoundaryIsInclusive(t *testing.T) {
	store := New("notes", NewMemoryBackend())

	current := time.UnixMilli(1_000_000)
	store.now = func() time.Time { return current }

	if err := store.Set("session", "token", 5*time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Exactly at createdAt+ttl the entry is still valid.
	current = current.Add(5 * time.Second)
	var got string
	if !store.Get("session", &got) {
		t.Error("Expected entry read exactly at expiry instant to be valid")
	}
}

func TestNamespacingIsolatesWidgets(t *testing.T) {
	backend := NewMemoryBackend()
	notes := New("notes", backend)
	clock := New("clock", backend)

	if err := notes.Set("shared", "from-notes", 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := clock.Set("shared", "from-clock", 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := clock.Set("extra", "x", 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var got string
	notes.Get("shared", &got)
	if got != "from-notes" {
		t.Errorf("Expected notes namespace to be isolated, got %q", got)
	}

	keys := notes.Keys()
	if len(keys) != 1 || keys[0] != "shared" {
		t.Errorf("Expected only own keys with prefix stripped, got %v", keys)
	}
}

func TestHasAndRemove(t *testing.T) {
	store := New("notes", NewMemoryBackend())

	if store.Has("draft") {
		t.Error("Expected Has to be false before set")
	}
	if err := store.Set("draft", 1, 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !store.Has("draft") {
		t.Error("Expected Has to be true after set")
	}
	if err := store.Remove("draft"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if store.Has("draft") {
		t.Error("Expected Has to be false after remove")
	}
}

func TestClearRemovesOnlyOwnNamespace(t *testing.T) {
	backend := NewMemoryBackend()
	notes := New("notes", backend)
	clock := New("clock", backend)

	notes.Set("a", 1, 0)
	notes.Set("b", 2, 0)
	clock.Set("a", 3, 0)

	if err := notes.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(notes.Keys()) != 0 {
		t.Errorf("Expected empty namespace after clear, got %v", notes.Keys())
	}
	if !clock.Has("a") {
		t.Error("Expected other widget's namespace to survive clear")
	}
}

func TestMalformedStoredDataTreatedAsAbsent(t *testing.T) {
	backend := NewMemoryBackend()
	store := New("notes", backend)

	backend.Set(KeyPrefix("notes")+"corrupt", "{not json")

	var got string
	if store.Get("corrupt", &got) {
		t.Error("Expected malformed stored data to report absence")
	}
}

func TestProbeFallsBackToMemory(t *testing.T) {
	store := New("notes", failingBackend{})

	// The failing backend would error every write; the fallback must not.
	if err := store.Set("draft", "hello", 0); err != nil {
		t.Fatalf("Expected memory fallback write to succeed, got %v", err)
	}
	var got string
	if !store.Get("draft", &got) || got != "hello" {
		t.Errorf("Expected round trip on fallback, got %q", got)
	}
}

func TestChangeNotificationsFollowMutations(t *testing.T) {
	store := New("notes", NewMemoryBackend())

	var changes []Change
	unsubscribe := store.Subscribe(func(c Change) { changes = append(changes, c) })
	defer unsubscribe()

	store.Set("a", 1, 0)
	store.Remove("a")
	store.Clear()

	if len(changes) != 3 {
		t.Fatalf("Expected 3 change events, got %d", len(changes))
	}
	if changes[0].Kind != ChangeSet || changes[0].Key != "a" {
		t.Errorf("Expected set event for a, got %+v", changes[0])
	}
	if changes[1].Kind != ChangeRemove {
		t.Errorf("Expected remove event, got %+v", changes[1])
	}
	if changes[2].Kind != ChangeClear {
		t.Errorf("Expected clear event, got %+v", changes[2])
	}
}
