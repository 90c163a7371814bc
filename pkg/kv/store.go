package kv

import "context"

// Store is the durable key-value port the vault persists through. Host
// environments differ (local file, Redis, tests), so the vault depends on
// this abstraction rather than on a concrete backend.
//
// A key is absent until its first Set; absence is a valid state reported as
// ErrKeyNotFound, not a failure. Set overwrites the full value for a key,
// which keeps every write atomic from the caller's perspective.
type Store interface {
	// Get retrieves the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
