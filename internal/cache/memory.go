package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process memory. It is the hot layer in
// front of the disk cache and evicts on TTL only.
type MemoryCache struct {
	inner *gocache.Cache
}

// NewMemoryCache creates a memory cache. Expired entries are swept at half
// the default TTL, floored at one minute.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	sweep := defaultTTL / 2
	if sweep < time.Minute {
		sweep = time.Minute
	}
	return &MemoryCache{inner: gocache.New(defaultTTL, sweep)}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.inner.Get(key)
	if !found {
		return nil, false
	}
	return val.([]byte), true
}

// Set stores a value with the given TTL; a zero TTL uses the default
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.inner.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.inner.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.inner.Flush()
	return nil
}
