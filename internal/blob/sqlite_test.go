package blob

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newSQLiteTestStore(t)

	_, ok, err := store.Get("streaming_wishlist")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put("streaming_wishlist", []byte(`[]`)))

	data, ok, err := store.Get("streaming_wishlist")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(data))
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store := newSQLiteTestStore(t)

	require.NoError(t, store.Put("k", []byte("one")))
	require.NoError(t, store.Put("k", []byte("two")))

	data, ok, err := store.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", string(data))
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := newSQLiteTestStore(t)

	require.NoError(t, store.Put("k", []byte("v")))
	require.NoError(t, store.Delete("k"))

	_, ok, err := store.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Delete("k"))
}
