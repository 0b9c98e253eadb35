package binding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"streamvault/internal/blob"
	"streamvault/internal/collection"
)

type item struct {
	ID string `json:"id"`
}

func idOf(i item) string { return i.ID }

func TestWatcherTracksStore(t *testing.T) {
	store := collection.New(blob.NewMemoryStore(), "test_items", collection.Append, idOf)
	require.NoError(t, store.InsertUnique(item{ID: "1"}, idOf))

	w := Watch[item](store)
	defer w.Close()

	require.Equal(t, 1, w.Len(), "watcher loads the existing collection on start")

	require.NoError(t, store.InsertUnique(item{ID: "2"}, idOf))
	snapshot := w.Snapshot()
	require.Len(t, snapshot, 2, "snapshot refreshes synchronously with the write")
	require.Equal(t, "2", snapshot[1].ID)

	_, err := store.RemoveByKey("1")
	require.NoError(t, err)
	require.Equal(t, 1, w.Len())
}

func TestClosedWatcherStopsRefreshing(t *testing.T) {
	store := collection.New(blob.NewMemoryStore(), "test_items", collection.Append, idOf)
	w := Watch[item](store)
	w.Close()

	require.NoError(t, store.InsertUnique(item{ID: "1"}, idOf))
	require.Zero(t, w.Len(), "a closed watcher keeps its last snapshot")
}
