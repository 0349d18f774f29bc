package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/onecode/onecode/internal/log"
)

// Memory is a CacheManager over go-cache, safe for concurrent use.
type Memory[K ~string, V any] struct {
	name  string
	store *gocache.Cache
}

var _ CacheManager[string, int] = (*Memory[string, int])(nil)

// NewMemory creates a cache whose entries expire after ttl unless Set is
// given another duration. Expired entries are swept every 3*ttl. name
// identifies the cache in logs.
func NewMemory[K ~string, V any](name string, ttl time.Duration) *Memory[K, V] {
	return &Memory[K, V]{name: name, store: gocache.New(ttl, 3*ttl)}
}

func (m *Memory[K, V]) Get(_ context.Context, key K) (V, bool) {
	raw, ok := m.store.Get(string(key))
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "unexpected value type", "cache", m.name, "key", string(key))
	}
	return v, ok
}

// Set stores value for ttl. A zero ttl uses the cache default.
func (m *Memory[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	m.store.Set(string(key), value, ttl)
}

func (m *Memory[K, V]) Delete(_ context.Context, keys ...K) error {
	for _, k := range keys {
		m.store.Delete(string(k))
	}
	return nil
}

func (m *Memory[K, V]) Flush(context.Context) error {
	log.Debug(log.CatCache, "flush", "cache", m.name, "entries", m.store.ItemCount())
	m.store.Flush()
	return nil
}

// Len counts stored entries. Expired entries count until the next sweep.
func (m *Memory[K, V]) Len() int {
	return m.store.ItemCount()
}
