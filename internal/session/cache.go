package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedEntry wraps a cached value with version metadata for invalidation
type cachedEntry[V any] struct {
	Version  string
	Value    V
	CachedAt time.Time
}

// remoteCache holds recent answers from the shared endpoint with a TTL.
type remoteCache[V any] struct {
	lru *expirable.LRU[string, *cachedEntry[V]]
}

func newRemoteCache[V any](size int, ttl time.Duration) *remoteCache[V] {
	return &remoteCache[V]{
		lru: expirable.NewLRU[string, *cachedEntry[V]](size, nil, ttl),
	}
}

// Get returns the cached value when present, unexpired and of the current schema.
func (c *remoteCache[V]) Get(key string) (V, bool) {
	var zero V
	entry, found := c.lru.Get(key)
	if !found {
		return zero, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return zero, false
	}
	return entry.Value, true
}

// Set stores value under key.
func (c *remoteCache[V]) Set(key string, value V) {
	c.lru.Add(key, &cachedEntry[V]{
		Version:  CacheSchemaVersion,
		Value:    value,
		CachedAt: time.Now(),
	})
}

// Invalidate removes key.
func (c *remoteCache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}
