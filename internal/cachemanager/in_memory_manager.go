package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/scribe/internal/log"
)

// Lifetimes used when callers have no better value.
const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	name  string
	cache *gocache.Cache
}

// NewInMemoryCacheManager returns an empty cache. name only labels log lines.
func NewInMemoryCacheManager[K ~string, V any](name string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value stored under key. A value of the wrong type is
// treated as a miss.
func (c *InMemoryCacheManager[K, V]) Get(key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type in cache", "cache", c.name, "key", string(key))
		return zero, false
	}
	log.Debug(log.CatCache, "cache hit", "cache", c.name, "key", string(key))
	return v, true
}

// Set stores value for ttl. A zero ttl uses the cache's default expiration.
func (c *InMemoryCacheManager[K, V]) Set(key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys. Missing keys are ignored.
func (c *InMemoryCacheManager[K, V]) Delete(keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes every entry.
func (c *InMemoryCacheManager[K, V]) Flush() {
	c.cache.Flush()
}

// Len counts stored entries, including expired ones not yet cleaned up.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}
