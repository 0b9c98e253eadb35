package wishlist

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"streamvault/models"
)

// Presentation-layer orderings built on top of All(). The store itself
// guarantees nothing beyond insertion order.

// SortedByAddedAt returns a copy ordered newest first.
func SortedByAddedAt(entries []models.WishlistEntry) []models.WishlistEntry {
	out := append([]models.WishlistEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}

// SortedByRating returns a copy ordered highest rated first.
func SortedByRating(entries []models.WishlistEntry) []models.WishlistEntry {
	out := append([]models.WishlistEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

// SortedByTitle returns a copy ordered alphabetically using the collation
// rules of the given BCP 47 tag; an unparseable tag falls back to English.
func SortedByTitle(entries []models.WishlistEntry, lang string) []models.WishlistEntry {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	c := collate.New(tag, collate.IgnoreCase)

	out := append([]models.WishlistEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Title, out[j].Title) < 0
	})
	return out
}
