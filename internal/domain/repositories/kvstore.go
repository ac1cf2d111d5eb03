package repositories

import "context"

// KeyValueStore is the persistence boundary: string keys mapped to opaque
// serialized blobs. Any durable store with get/set by key satisfies it.
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany writes every key in one call. Backends that support it apply
	// the writes atomically.
	SetMany(ctx context.Context, values map[string][]byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
