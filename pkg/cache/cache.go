// Package cache stores rendered artifacts so that expensive formats are not
// drawn twice for the same outline.
//
// SVG, PDF and PNG output goes through Graphviz and rsvg-convert, which
// dominates the cost of an export. The pipeline keys those artifacts by a
// hash of the DOT source and the format, so any change to the scene graph or
// its labels produces a new key and stale entries are simply never read.
//
// # Implementations
//
//   - [FileCache]: one file per entry below a directory, used by the CLI
//   - [MemoryCache]: bounded in-process map, used by the HTTP server
//   - [NullCache]: stores nothing, used with --no-cache and in tests
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is a
	// miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
