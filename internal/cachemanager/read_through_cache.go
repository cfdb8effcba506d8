package cachemanager

import "time"

// ReadThroughCache computes values on a miss and stores the result.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	fn    func(input I) (V, error)
	skip  bool
}

// NewReadThroughCache wraps cache with fn. When skip is true every call goes
// straight to fn.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(input I) (V, error),
	skip bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, skip: skip}
}

// Get returns the cached value for key or computes it from input. Errors
// are not cached.
func (r *ReadThroughCache[K, V, I]) Get(key K, input I, ttl time.Duration) (V, error) {
	if r.skip {
		return r.fn(input)
	}
	if value, ok := r.cache.Get(key); ok {
		return value, nil
	}

	value, err := r.fn(input)
	if err != nil {
		return value, err
	}
	r.cache.Set(key, value, ttl)
	return value, nil
}

// Cache returns the underlying store.
func (r *ReadThroughCache[K, V, I]) Cache() CacheManager[K, V] {
	return r.cache
}
