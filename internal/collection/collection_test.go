package collection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"streamvault/internal/blob"
)

type record struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Note  string `json:"note,omitempty"`
}

func newRecordStore(substrate blob.Store, order Order) *Store[record] {
	return New(substrate, "test_records", order, func(r record) string { return r.ID })
}

func byID(r record) string    { return r.ID }
func byEmail(r record) string { return r.Email }

func TestInsertUniqueRejectsDuplicates(t *testing.T) {
	store := newRecordStore(blob.NewMemoryStore(), Append)

	require.NoError(t, store.InsertUnique(record{ID: "1", Email: "a@example.com"}, byEmail))
	err := store.InsertUnique(record{ID: "2", Email: "a@example.com"}, byEmail)
	require.ErrorIs(t, err, ErrDuplicateKey)

	items := store.LoadAll()
	require.Len(t, items, 1)
	require.Equal(t, "1", items[0].ID)
}

func TestUniqueKeyMayDifferFromIdentityKey(t *testing.T) {
	store := newRecordStore(blob.NewMemoryStore(), Append)

	// Identity is the id; uniqueness is enforced on the email.
	require.NoError(t, store.InsertUnique(record{ID: "1", Email: "a@example.com"}, byEmail))
	require.NoError(t, store.InsertUnique(record{ID: "2", Email: "b@example.com"}, byEmail))

	removed, err := store.RemoveByKey("1")
	require.NoError(t, err)
	require.True(t, removed)
	require.Equal(t, 1, store.Count())
}

func TestOrderPolicies(t *testing.T) {
	appendStore := newRecordStore(blob.NewMemoryStore(), Append)
	require.NoError(t, appendStore.InsertUnique(record{ID: "1"}, byID))
	require.NoError(t, appendStore.InsertUnique(record{ID: "2"}, byID))
	items := appendStore.LoadAll()
	require.Equal(t, []string{"1", "2"}, []string{items[0].ID, items[1].ID})

	prependStore := newRecordStore(blob.NewMemoryStore(), Prepend)
	require.NoError(t, prependStore.InsertUnique(record{ID: "1"}, byID))
	require.NoError(t, prependStore.InsertUnique(record{ID: "2"}, byID))
	items = prependStore.LoadAll()
	require.Equal(t, []string{"2", "1"}, []string{items[0].ID, items[1].ID})
}

func TestRemoveAbsentKeyWritesNothing(t *testing.T) {
	substrate := blob.NewMemoryStore()
	store := newRecordStore(substrate, Append)
	require.NoError(t, store.InsertUnique(record{ID: "1", Email: "a@example.com"}, byEmail))

	before, ok, err := substrate.Get("test_records")
	require.NoError(t, err)
	require.True(t, ok)

	removed, err := store.RemoveByKey("nope")
	require.NoError(t, err)
	require.False(t, removed)

	after, ok, err := substrate.Get("test_records")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, before, after, "a no-op removal must leave the blob byte-for-byte unchanged")
}

func TestUpdate(t *testing.T) {
	store := newRecordStore(blob.NewMemoryStore(), Append)
	require.NoError(t, store.InsertUnique(record{ID: "1", Email: "a@example.com"}, byEmail))

	updated, found, err := store.Update("1", func(r record) record {
		r.Note = "hello"
		return r
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "hello", updated.Note)

	items := store.LoadAll()
	require.Len(t, items, 1)
	require.Equal(t, "hello", items[0].Note)

	_, found, err = store.Update("nope", func(r record) record { return r })
	require.NoError(t, err)
	require.False(t, found)
}

func TestCorruptBlobReadsAsEmpty(t *testing.T) {
	substrate := blob.NewMemoryStore()
	require.NoError(t, substrate.Put("test_records", []byte("{not json")))

	store := newRecordStore(substrate, Append)
	require.Empty(t, store.LoadAll())

	// The store recovers: the next write replaces the corrupt blob.
	require.NoError(t, store.InsertUnique(record{ID: "1", Email: "a@example.com"}, byEmail))
	require.Equal(t, 1, store.Count())
}

func TestClear(t *testing.T) {
	substrate := blob.NewMemoryStore()
	store := newRecordStore(substrate, Append)
	require.NoError(t, store.InsertUnique(record{ID: "1", Email: "a@example.com"}, byEmail))

	require.NoError(t, store.Clear())
	require.Zero(t, store.Count())

	_, ok, err := substrate.Get("test_records")
	require.NoError(t, err)
	require.False(t, ok, "clear removes the blob entirely")
}

func TestRoundTripLargeCollection(t *testing.T) {
	substrate := blob.NewMemoryStore()
	store := newRecordStore(substrate, Append)

	for i := 0; i < 150; i++ {
		rec := record{ID: fmt.Sprintf("id-%03d", i), Email: fmt.Sprintf("u%03d@example.com", i)}
		require.NoError(t, store.InsertUnique(rec, byEmail))
	}

	// A second store over the same substrate sees the same collection.
	other := newRecordStore(substrate, Append)
	items := other.LoadAll()
	require.Len(t, items, 150)
	require.Equal(t, "id-000", items[0].ID)
	require.Equal(t, "id-149", items[149].ID)
}

func TestSubscribeNotifiesAfterWrite(t *testing.T) {
	store := newRecordStore(blob.NewMemoryStore(), Append)

	var seen []int
	unsubscribe := store.Subscribe(func() {
		// The write must be visible by the time the listener runs.
		seen = append(seen, store.Count())
	})

	require.NoError(t, store.InsertUnique(record{ID: "1", Email: "a@example.com"}, byEmail))
	require.NoError(t, store.InsertUnique(record{ID: "2", Email: "b@example.com"}, byEmail))
	require.Equal(t, []int{1, 2}, seen)

	// A failed insert must not notify.
	require.Error(t, store.InsertUnique(record{ID: "3", Email: "a@example.com"}, byEmail))
	require.Equal(t, []int{1, 2}, seen)

	unsubscribe()
	_, err := store.RemoveByKey("1")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, seen)
}
