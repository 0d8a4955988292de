package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryCache keeps up to a fixed number of entries in memory and evicts the
// least recently used one when full. It is safe for concurrent use.
type MemoryCache struct {
	entries *lru.Cache[string, memoryEntry]
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryCache creates a cache holding at most maxEntries entries.
// maxEntries below 1 is treated as 1.
func NewMemoryCache(maxEntries int) *MemoryCache {
	// lru.New only fails for a non-positive size.
	entries, _ := lru.New[string, memoryEntry](max(maxEntries, 1))
	return &MemoryCache{entries: entries}
}

// Get retrieves a value from the cache. Expired entries are dropped and
// reported as misses.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a value in the cache. A ttl of zero keeps the entry until it is
// evicted.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries.Add(key, e)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.entries.Purge()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
