package event

import "sync"

// Feed is a typed broadcast channel between publishers and subscribers.
// Subscribers are notified in subscription order. The zero value is not
// usable; create feeds with NewFeed.
type Feed[T any] struct {
	mu     sync.Mutex
	nextID int
	order  []int
	subs   map[int]func(T)
}

// NewFeed creates an empty feed
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]func(T))}
}

// Subscribe registers a handler and returns its unsubscribe function.
// Unsubscribing is idempotent and reliably prevents future deliveries;
// a publish already in flight still completes against its snapshot.
func (f *Feed[T]) Subscribe(handler func(T)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.subs[id] = handler
	f.order = append(f.order, id)

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[id]; !ok {
			return
		}
		delete(f.subs, id)
		for i, sid := range f.order {
			if sid == id {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers value to every subscriber active at call time,
// in subscription order. Handlers run on the caller's goroutine.
func (f *Feed[T]) Publish(value T) {
	f.mu.Lock()
	snapshot := make([]func(T), 0, len(f.order))
	for _, id := range f.order {
		if handler, ok := f.subs[id]; ok {
			snapshot = append(snapshot, handler)
		}
	}
	f.mu.Unlock()

	for _, handler := range snapshot {
		handler(value)
	}
}

// Len returns the number of active subscribers
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
