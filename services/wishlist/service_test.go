package wishlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"streamvault/internal/blob"
	"streamvault/models"
)

func item(id int64, kind models.MediaKind, title string) models.CatalogItem {
	return models.CatalogItem{ID: id, Kind: kind, Title: title}
}

func TestAddIsIdempotent(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())

	require.True(t, svc.Add(item(603, models.MediaKindMovie, "The Matrix")))
	require.False(t, svc.Add(item(603, models.MediaKindMovie, "The Matrix")), "re-adding reports false, not an error")
	require.Equal(t, 1, svc.Count())
	require.True(t, svc.Contains(603))
}

func TestAddPrependsNewEntries(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())

	require.True(t, svc.Add(item(1, models.MediaKindMovie, "First")))
	require.True(t, svc.Add(item(2, models.MediaKindMovie, "Second")))

	entries := svc.All()
	require.Len(t, entries, 2)
	require.Equal(t, int64(2), entries[0].ID, "most recent addition lists first")
	require.Equal(t, int64(1), entries[1].ID)
}

func TestAddDefaultsInvalidKindToMovie(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())

	require.True(t, svc.Add(item(7, models.MediaKind("bogus"), "Unknown")))
	entries := svc.All()
	require.Len(t, entries, 1)
	require.Equal(t, models.MediaKindMovie, entries[0].Kind)
}

func TestAddStampsAddedAt(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	require.True(t, svc.Add(item(1, models.MediaKindMovie, "Stamped")))
	entries := svc.All()
	require.Len(t, entries, 1)
	require.True(t, entries[0].AddedAt.Equal(fixed))
}

func TestRemove(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	require.True(t, svc.Add(item(1, models.MediaKindMovie, "One")))

	require.True(t, svc.Remove(1))
	require.False(t, svc.Remove(1), "removing an absent id reports false")
	require.False(t, svc.Contains(1))
	require.Zero(t, svc.Count())
}

func TestByKind(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	require.True(t, svc.Add(item(1, models.MediaKindMovie, "Movie")))
	require.True(t, svc.Add(item(2, models.MediaKindSeries, "Series")))

	movies := svc.ByKind(models.MediaKindMovie)
	require.Len(t, movies, 1)
	require.Equal(t, int64(1), movies[0].ID)

	series := svc.ByKind(models.MediaKindSeries)
	require.Len(t, series, 1)
	require.Equal(t, int64(2), series[0].ID)
}

func TestRecentlyAdded(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc.now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	for i := int64(1); i <= 5; i++ {
		require.True(t, svc.Add(item(i, models.MediaKindMovie, "x")))
	}

	recent := svc.RecentlyAdded(3)
	require.Len(t, recent, 3)
	require.Equal(t, int64(5), recent[0].ID)
	require.Equal(t, int64(3), recent[2].ID)
}

func TestClear(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	require.True(t, svc.Add(item(1, models.MediaKindMovie, "One")))

	require.NoError(t, svc.Clear())
	require.Zero(t, svc.Count())
	require.Empty(t, svc.All())
}

func TestWishlistSharedAcrossInstances(t *testing.T) {
	substrate := blob.NewMemoryStore()

	first := NewService(substrate)
	require.True(t, first.Add(item(603, models.MediaKindMovie, "The Matrix")))

	second := NewService(substrate)
	require.True(t, second.Contains(603), "a second service over the same substrate sees the same wishlist")
	require.False(t, second.Add(item(603, models.MediaKindMovie, "The Matrix")))
}

func TestCorruptBlobReadsAsEmptyWishlist(t *testing.T) {
	substrate := blob.NewMemoryStore()
	require.NoError(t, substrate.Put(BlobKey, []byte("not json at all")))

	svc := NewService(substrate)
	require.Empty(t, svc.All())
	require.True(t, svc.Add(item(1, models.MediaKindMovie, "Recovered")))
	require.Equal(t, 1, svc.Count())
}

func TestSortings(t *testing.T) {
	entries := []models.WishlistEntry{
		{CatalogItem: models.CatalogItem{ID: 1, Title: "zulu", Rating: 5.1}, AddedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{CatalogItem: models.CatalogItem{ID: 2, Title: "Alpha", Rating: 8.7}, AddedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{CatalogItem: models.CatalogItem{ID: 3, Title: "mike", Rating: 7.0}, AddedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	byAdded := SortedByAddedAt(entries)
	require.Equal(t, int64(3), byAdded[0].ID)
	require.Equal(t, int64(1), byAdded[2].ID)

	byRating := SortedByRating(entries)
	require.Equal(t, int64(2), byRating[0].ID)
	require.Equal(t, int64(1), byRating[2].ID)

	byTitle := SortedByTitle(entries, "en-US")
	require.Equal(t, "Alpha", byTitle[0].Title, "title sort ignores case")
	require.Equal(t, "zulu", byTitle[2].Title)

	// Inputs are never reordered in place.
	require.Equal(t, int64(1), entries[0].ID)
}
