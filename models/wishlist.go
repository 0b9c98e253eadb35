package models

import "time"

// WishlistEntry is a catalog item snapshot saved by the user, plus the time
// it was added. A later change to the canonical catalog record does not
// propagate into the entry.
type WishlistEntry struct {
	CatalogItem
	AddedAt time.Time `json:"addedAt"`
}

// NewWishlistEntry copies the catalog item into a wishlist entry stamped at
// the given time.
func NewWishlistEntry(item CatalogItem, addedAt time.Time) WishlistEntry {
	if item.GenreIDs != nil {
		genres := make([]int64, len(item.GenreIDs))
		copy(genres, item.GenreIDs)
		item.GenreIDs = genres
	}
	return WishlistEntry{CatalogItem: item, AddedAt: addedAt}
}
