// Package blob provides the key-value persistence substrate the entity
// stores are built on. Each logical collection is one serialized blob under
// one fixed key; the substrate knows nothing about the shape of the data.
package blob

// Store reads and writes opaque blobs by key. Implementations must make a
// successful Put immediately visible to a following Get on the same
// instance. Two Store instances pointed at the same underlying storage are
// not synchronized with each other; concurrent writers are last-writer-wins.
type Store interface {
	// Get returns the blob stored under key, and whether one exists.
	Get(key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous blob atomically.
	Put(key string, value []byte) error
	// Delete removes the blob under key. Deleting an absent key is a no-op.
	Delete(key string) error
}
