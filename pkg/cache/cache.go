// Package cache stores conversion results and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys built with a
// [Keyer]. Three backends are provided: [FileCache] for the CLI,
// [RedisCache] for the API server, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	// TTLConversion bounds how long a converted document is reused.
	TTLConversion = 7 * 24 * time.Hour
	// TTLArtifact bounds how long rendered previews and reports are reused.
	TTLArtifact = 7 * 24 * time.Hour
)
