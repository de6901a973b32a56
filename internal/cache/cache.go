// Package cache provides a thread-safe LRU cache with per-entry TTL and
// performance counters, used for compiled matchers and file metadata.
package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Metrics is a snapshot of cache performance counters. All counters are
// monotone for the lifetime of the cache.
type Metrics struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
	Size        int    `json:"size"`
}

// HitRatio returns the fraction of lookups served from the cache.
func (m Metrics) HitRatio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is an LRU cache with a strict capacity bound and per-entry TTL.
// Expired entries are treated as misses and removed on read.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	lru *lru.Cache[K, entry[V]]
	ttl time.Duration

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
}

// New creates a cache holding at most capacity entries, each living for
// at most ttl after insertion.
func New[K comparable, V any](capacity int, ttl time.Duration) *Cache[K, V] {
	l, err := lru.New[K, entry[V]](capacity)
	if err != nil {
		// Only reachable with a non-positive capacity, which callers
		// validate beforehand.
		panic(err)
	}
	return &Cache[K, V]{lru: l, ttl: ttl}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.lru.Get(key); ok {
		if time.Now().Before(e.expiresAt) {
			c.hits++
			return e.value, true
		}
		c.lru.Remove(key)
		c.expirations++
	}
	c.misses++
	var zero V
	return zero, false
}

// Put stores value under key, evicting the least-recently-used entry when
// the cache is at capacity.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if evicted := c.lru.Add(key, entry[V]{value: value, expiresAt: time.Now().Add(c.ttl)}); evicted {
		c.evictions++
	}
}

// Len returns the current number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Purge removes all entries. Counters are preserved.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Metrics returns a snapshot of the performance counters.
func (c *Cache[K, V]) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Metrics{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		Size:        c.lru.Len(),
	}
}
