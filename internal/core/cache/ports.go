package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) by Get when a key is absent or expired.
// Callers distinguish a plain miss from a backend failure with errors.Is.
var ErrNotFound = errors.New("key not found")

// Cache defines the caching operations port. It is implemented by different
// backends (Redis for the durable tier, an in-process map for the fast tier)
// so the layers above never depend on a concrete store.
type Cache interface {
	// Get retrieves a value by key. Returns an error wrapping ErrNotFound
	// when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key starting with the given prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Ping checks if the cache backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
