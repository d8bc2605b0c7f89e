package data

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// FileChange is delivered to file watch subscribers
type FileChange struct {
	Type string // "change" or "rename"
	Path string
}

// fileSub is one active watch subscription
type fileSub struct {
	path     string
	callback func(FileChange)
}

// FileWatcher multiplexes fsnotify events to per-path subscribers. Each
// subscription gets its own id so callers can tear down exactly what they
// registered; Close releases everything.
type FileWatcher struct {
	watcher *fsnotify.Watcher

	mu   sync.Mutex
	subs map[string]fileSub
	done chan struct{}
}

// NewFileWatcher starts the underlying fsnotify watcher and its dispatch
// loop.
func NewFileWatcher() (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		subs:    make(map[string]fileSub),
		done:    make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *FileWatcher) loop() {
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.dispatch(ev)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)
		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) dispatch(ev fsnotify.Event) {
	changeType := "change"
	if ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Create) {
		changeType = "rename"
	}
	change := FileChange{Type: changeType, Path: ev.Name}

	path := filepath.Clean(ev.Name)

	fw.mu.Lock()
	var callbacks []func(FileChange)
	for _, sub := range fw.subs {
		if sub.path == path || sub.path == filepath.Dir(path) {
			callbacks = append(callbacks, sub.callback)
		}
	}
	fw.mu.Unlock()

	for _, cb := range callbacks {
		cb(change)
	}
}

// Watch subscribes callback to changes of path and returns the watch id
func (fw *FileWatcher) Watch(path string, callback func(FileChange)) (string, error) {
	path = filepath.Clean(path)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	watched := false
	for _, sub := range fw.subs {
		if sub.path == path {
			watched = true
			break
		}
	}
	if !watched {
		if err := fw.watcher.Add(path); err != nil {
			return "", fmt.Errorf("watch %q: %w", path, err)
		}
	}

	id := uuid.NewString()
	fw.subs[id] = fileSub{path: path, callback: callback}
	return id, nil
}

// Unwatch removes one subscription; the underlying path stops being
// watched once its last subscriber is gone.
func (fw *FileWatcher) Unwatch(watchID string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	sub, ok := fw.subs[watchID]
	if !ok {
		return nil
	}
	delete(fw.subs, watchID)

	for _, other := range fw.subs {
		if other.path == sub.path {
			return nil
		}
	}
	return fw.watcher.Remove(sub.path)
}

// Close tears down every subscription and the dispatch loop
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.subs = make(map[string]fileSub)
	fw.mu.Unlock()

	close(fw.done)
	return fw.watcher.Close()
}
