// Package collection implements the persisted entity store: a uniquely
// keyed collection serialized as a single blob. Every operation is a full
// read-modify-write of the blob, so a fresh read always matches the last
// successful write and nothing is cached between calls.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"streamvault/internal/blob"
)

// ErrDuplicateKey is returned by InsertUnique when the entity's unique key
// collides with an existing entity. No write happens in that case.
var ErrDuplicateKey = errors.New("duplicate key")

// Order controls where InsertUnique places new entities.
type Order int

const (
	// Append adds new entities at the end of the collection.
	Append Order = iota
	// Prepend adds new entities at the front, for recency-ordered lists.
	Prepend
)

// Store is a uniquely keyed collection of T persisted as one blob. The key
// function identifies entities for removal and update; uniqueness on insert
// is checked against a caller-supplied key, which may differ (the user
// directory is keyed by id but unique by email).
//
// A mutex serialises operations within one Store instance. Two instances
// over the same substrate key are not synchronized: concurrent writers are
// last-writer-wins, which is an accepted property of the design.
type Store[T any] struct {
	mu    sync.Mutex
	blob  blob.Store
	key   string
	order Order
	keyOf func(T) string

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a store persisting under blobKey with the given order policy.
// keyOf extracts the identifying key used by RemoveByKey and Update.
func New[T any](store blob.Store, blobKey string, order Order, keyOf func(T) string) *Store[T] {
	return &Store[T]{
		blob:  store,
		key:   blobKey,
		order: order,
		keyOf: keyOf,
		subs:  make(map[int]func()),
	}
}

// LoadAll deserializes the persisted blob. An absent blob, a substrate
// error, or a corrupt blob all read as an empty collection; the latter two
// are logged but never surfaced to the caller.
func (s *Store[T]) LoadAll() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store[T]) loadLocked() []T {
	data, ok, err := s.blob.Get(s.key)
	if err != nil {
		log.Printf("[collection] read %s: %v", s.key, err)
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[collection] corrupt blob %s, treating as empty: %v", s.key, err)
		return nil
	}
	return items
}

func (s *Store[T]) saveLocked(items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.blob.Put(s.key, data); err != nil {
		return fmt.Errorf("persist %s: %w", s.key, err)
	}
	return nil
}

// InsertUnique appends or prepends the entity unless uniqueKey(entity)
// collides with an existing entity, in which case ErrDuplicateKey is
// returned and the collection is untouched.
func (s *Store[T]) InsertUnique(entity T, uniqueKey func(T) string) error {
	s.mu.Lock()
	items := s.loadLocked()

	want := uniqueKey(entity)
	for _, existing := range items {
		if uniqueKey(existing) == want {
			s.mu.Unlock()
			return ErrDuplicateKey
		}
	}

	if s.order == Prepend {
		items = append([]T{entity}, items...)
	} else {
		items = append(items, entity)
	}

	if err := s.saveLocked(items); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveByKey filters out the entity whose key matches and writes the
// collection back. Removing an absent key is a no-op that reports false and
// performs no write, leaving the persisted blob byte-for-byte unchanged.
func (s *Store[T]) RemoveByKey(key string) (bool, error) {
	s.mu.Lock()
	items := s.loadLocked()

	kept := items[:0:0]
	for _, item := range items {
		if s.keyOf(item) != key {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		s.mu.Unlock()
		return false, nil
	}

	if err := s.saveLocked(kept); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	s.notify()
	return true, nil
}

// Update applies apply to the entity whose key matches and writes the whole
// collection back. It reports whether a matching entity was found.
func (s *Store[T]) Update(key string, apply func(T) T) (T, bool, error) {
	var zero T

	s.mu.Lock()
	items := s.loadLocked()

	found := false
	var updated T
	for i, item := range items {
		if s.keyOf(item) == key {
			updated = apply(item)
			items[i] = updated
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return zero, false, nil
	}

	if err := s.saveLocked(items); err != nil {
		s.mu.Unlock()
		return zero, false, err
	}
	s.mu.Unlock()

	s.notify()
	return updated, true, nil
}

// Clear deletes the persisted blob entirely; a following LoadAll returns an
// empty collection.
func (s *Store[T]) Clear() error {
	s.mu.Lock()
	if err := s.blob.Delete(s.key); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Count is derived from a fresh read, never from a cached counter.
func (s *Store[T]) Count() int {
	return len(s.LoadAll())
}

// Subscribe registers fn to run after every successful mutation, once the
// write is visible to LoadAll. It returns an unsubscribe function.
func (s *Store[T]) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store[T]) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
