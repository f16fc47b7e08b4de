package cache

import "strings"

// Cache memoises immutable reference values (e.g. a year's holiday set).
// Values must not be mutated after Set.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Len() int
	Clear()
}

// Key builds a namespaced cache key from its parts
func Key(parts ...string) string {
	return "legalguard:v1:" + strings.Join(parts, ":")
}

// GetOrCompute returns the cached value for key, computing and storing it on a miss.
// compute must be deterministic: concurrent misses may both compute, and the
// first stored value wins.
func GetOrCompute(c Cache, key string, compute func() interface{}) interface{} {
	if val, found := c.Get(key); found {
		return val
	}

	c.Set(key, compute())

	val, _ := c.Get(key)
	return val
}
