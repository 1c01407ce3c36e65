// Package cache provides byte-level caching for rendered payloads.
//
// The server caches the full visualization payload keyed by graph revision,
// so repeated reads of an unchanged graph skip analytics and payload
// construction. Three backends are provided:
//
//   - [NullCache]: disables caching (the default)
//   - [FileCache]: per-entry JSON files with TTL metadata, for single-node use
//   - [RedisCache]: shared cache for multi-instance deployments
//
// All backends treat decode failures and expirations as misses, never as
// errors.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte payloads under string keys with an optional TTL.
// A zero TTL means no expiration.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash returns the hex-encoded SHA-256 of data, used to derive stable file
// names and redis keys from cache keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
