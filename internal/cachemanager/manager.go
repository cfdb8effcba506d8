// Package cachemanager provides typed in-memory caches with expiry.
package cachemanager

import "time"

// CacheManager stores values of one type under string-like keys.
type CacheManager[K ~string, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
	Len() int
}
