package kv

import (
	"context"
)

// UpdateFunc receives the current value of a key (nil when absent) and
// returns the value to store. Returning an error aborts the update.
type UpdateFunc func(old []byte) ([]byte, error)

// Repository is a durable key-value namespace. Values are opaque bytes and
// every write replaces a value whole.
type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	// Update runs a read-modify-write of one key atomically.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
