package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process cache without expiry. Reference data never goes stale
// within a process, so entries live until Clear.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Set stores a value unless the key is already present, so the first
// computed value stays canonical
func (c *MemoryCache) Set(key string, value interface{}) {
	_ = c.cache.Add(key, value, gocache.NoExpiration)
}

// Len returns the number of cached entries
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
