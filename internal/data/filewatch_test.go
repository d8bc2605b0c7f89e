package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForChange(t *testing.T, changes <-chan FileChange) FileChange {
	t.Helper()
	select {
	case change := <-changes:
		return change
	case <-time.After(3 * time.Second):
		t.Fatal("Expected a file change notification")
		return FileChange{}
	}
}

func TestWatchDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changes := make(chan FileChange, 8)
	id, err := fw.Watch(path, func(c FileChange) { changes <- c })
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if id == "" {
		t.Error("Expected a non-empty watch id")
	}

	if err := os.WriteFile(path, []byte(`{"v":1}`), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	change := waitForChange(t, changes)
	if change.Type != "change" {
		t.Errorf("Expected change type %q, got %q", "change", change.Type)
	}
	if filepath.Clean(change.Path) != path {
		t.Errorf("Expected path %q, got %q", path, change.Path)
	}
}

func TestWatchReportsRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte("a: 1"), 0o644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changes := make(chan FileChange, 8)
	if _, err := fw.Watch(path, func(c FileChange) { changes <- c }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}

	change := waitForChange(t, changes)
	if change.Type != "rename" {
		t.Errorf("Expected rename type for removal, got %q", change.Type)
	}
}

func TestUnwatchStopsDelivery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changes := make(chan FileChange, 8)
	id, err := fw.Watch(path, func(c FileChange) { changes <- c })
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := fw.Unwatch(id); err != nil {
		t.Fatalf("Unwatch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("y"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	select {
	case change := <-changes:
		t.Errorf("Expected no delivery after Unwatch, got %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestUnwatchKeepsOtherSubscribers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	first := make(chan FileChange, 8)
	second := make(chan FileChange, 8)
	firstID, err := fw.Watch(path, func(c FileChange) { first <- c })
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if _, err := fw.Watch(path, func(c FileChange) { second <- c }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := fw.Unwatch(firstID); err != nil {
		t.Fatalf("Unwatch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("y"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	waitForChange(t, second)
	select {
	case change := <-first:
		t.Errorf("Expected removed subscriber to stay silent, got %+v", change)
	default:
	}
}
