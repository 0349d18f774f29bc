package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// ReadThrough computes values with load and remembers them in a store,
// keyed by key(input).
type ReadThrough[K comparable, V any, I any] struct {
	store CacheManager[K, V]
	key   func(I) K
	load  func(context.Context, I) (V, error)
	ttl   time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewReadThrough wraps load. A nil store disables caching, so every Get
// calls load.
func NewReadThrough[K comparable, V any, I any](
	store CacheManager[K, V],
	key func(I) K,
	load func(context.Context, I) (V, error),
	ttl time.Duration,
) *ReadThrough[K, V, I] {
	return &ReadThrough[K, V, I]{store: store, key: key, load: load, ttl: ttl}
}

// Get returns the stored value for input or loads and stores it. A failed
// load is returned as is and leaves the store untouched.
func (r *ReadThrough[K, V, I]) Get(ctx context.Context, input I) (V, error) {
	if r.store == nil {
		return r.load(ctx, input)
	}
	k := r.key(input)
	if v, ok := r.store.Get(ctx, k); ok {
		r.hits.Add(1)
		return v, nil
	}
	r.misses.Add(1)
	v, err := r.load(ctx, input)
	if err == nil {
		r.store.Set(ctx, k, v, r.ttl)
	}
	return v, err
}

// Stats reports cache hits and misses since creation.
func (r *ReadThrough[K, V, I]) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}
