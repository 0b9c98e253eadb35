// Package wishlist is the saved-items set: catalog snapshots keyed by item
// id, one per browser/storage scope regardless of who is signed in.
package wishlist

import (
	"errors"
	"log"
	"strconv"
	"time"

	"streamvault/internal/blob"
	"streamvault/internal/collection"
	"streamvault/models"
)

// BlobKey is the substrate key the wishlist persists under.
const BlobKey = "streaming_wishlist"

// Service manages the wishlist collection. Add and Remove are idempotent:
// duplicates and absent ids report false instead of erroring.
type Service struct {
	store *collection.Store[models.WishlistEntry]
	now   func() time.Time
}

// NewService creates a wishlist backed by the given substrate. New entries
// are prepended so a plain read lists most recent additions first.
func NewService(store blob.Store) *Service {
	return &Service{
		store: collection.New(store, BlobKey, collection.Prepend, func(e models.WishlistEntry) string {
			return strconv.FormatInt(e.ID, 10)
		}),
		now: time.Now,
	}
}

// Add snapshots the catalog item into the wishlist. It reports false when
// the item is already present or the write fails; a persistence failure is
// logged, never propagated.
func (s *Service) Add(item models.CatalogItem) bool {
	if !item.Kind.Valid() {
		item.Kind = models.MediaKindMovie
	}

	entry := models.NewWishlistEntry(item, s.now().UTC())
	err := s.store.InsertUnique(entry, func(e models.WishlistEntry) string {
		return strconv.FormatInt(e.ID, 10)
	})
	if errors.Is(err, collection.ErrDuplicateKey) {
		return false
	}
	if err != nil {
		log.Printf("[wishlist] add %d: %v", item.ID, err)
		return false
	}
	return true
}

// Remove deletes the entry for id, reporting whether one was removed.
func (s *Service) Remove(id int64) bool {
	removed, err := s.store.RemoveByKey(strconv.FormatInt(id, 10))
	if err != nil {
		log.Printf("[wishlist] remove %d: %v", id, err)
		return false
	}
	return removed
}

// Contains checks membership against a fresh read.
func (s *Service) Contains(id int64) bool {
	for _, entry := range s.store.LoadAll() {
		if entry.ID == id {
			return true
		}
	}
	return false
}

// All returns the entries in stored order (most recent additions first).
func (s *Service) All() []models.WishlistEntry {
	return s.store.LoadAll()
}

// ByKind filters the wishlist to one media kind.
func (s *Service) ByKind(kind models.MediaKind) []models.WishlistEntry {
	var out []models.WishlistEntry
	for _, entry := range s.store.LoadAll() {
		if entry.Kind == kind {
			out = append(out, entry)
		}
	}
	return out
}

// RecentlyAdded returns up to limit entries, newest first.
func (s *Service) RecentlyAdded(limit int) []models.WishlistEntry {
	entries := SortedByAddedAt(s.store.LoadAll())
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Clear deletes the whole wishlist blob.
func (s *Service) Clear() error {
	return s.store.Clear()
}

// Count is derived from a fresh read.
func (s *Service) Count() int {
	return s.store.Count()
}

// Subscribe registers a change listener; see collection.Store.Subscribe.
func (s *Service) Subscribe(fn func()) func() {
	return s.store.Subscribe(fn)
}

// LoadAll implements binding.Source.
func (s *Service) LoadAll() []models.WishlistEntry {
	return s.store.LoadAll()
}
