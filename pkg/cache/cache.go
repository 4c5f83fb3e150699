// Package cache provides pluggable caching for resolved product specs
// and other expensive lookups.
//
// The [Cache] interface abstracts over storage backends so the catalog
// resolver and the HTTP layer do not care where entries live:
//
//   - [FileCache]: entries on disk, suited to CLI usage
//   - [RedisCache]: entries in Redis, suited to server deployments
//   - [NullCache]: no-op, caching disabled
//
// Keys are produced by a [Keyer] so that every component derives them the
// same way. Use [NewScopedKeyer] to prefix keys with a deployment-specific
// namespace when several environments share one backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with an optional TTL.
//
// Implementations must be safe for concurrent use. A zero TTL means the
// entry never expires.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh; an expired or missing entry is (nil,
	// false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A ttl of 0 stores the entry
	// without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
