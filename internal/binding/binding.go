// Package binding adapts a store to a reactive view layer: after every
// mutation the store signals, the watcher re-reads the full collection and
// republishes it. The snapshot a view sees is therefore always the result
// of a fresh read, never a stale cache.
package binding

import "sync"

// Source is the store-side half of the contract: a full read plus a change
// subscription.
type Source[T any] interface {
	LoadAll() []T
	Subscribe(fn func()) func()
}

// Watcher mirrors a Source's collection into a snapshot that is refreshed
// synchronously on every change notification.
type Watcher[T any] struct {
	mu     sync.RWMutex
	src    Source[T]
	items  []T
	cancel func()
}

// Watch loads the initial snapshot and subscribes for updates.
func Watch[T any](src Source[T]) *Watcher[T] {
	w := &Watcher[T]{src: src}
	w.refresh()
	w.cancel = src.Subscribe(w.refresh)
	return w
}

func (w *Watcher[T]) refresh() {
	items := w.src.LoadAll()
	w.mu.Lock()
	w.items = items
	w.mu.Unlock()
}

// Snapshot returns the current collection. The caller must not mutate it.
func (w *Watcher[T]) Snapshot() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.items
}

// Len returns the size of the current snapshot.
func (w *Watcher[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

// Close unsubscribes the watcher from its source.
func (w *Watcher[T]) Close() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}
