// Package cache provides a small in-memory key-value cache with per-entry
// TTL expiry. Eviction is lazy: an expired entry is removed when it is next
// read, so there is no background sweeper. Growth is unbounded, which is
// acceptable for the key space this service sees.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

type Cache[V any] struct {
	mu         sync.RWMutex
	defaultTTL time.Duration
	entries    map[string]entry[V]
	now        func() time.Time
}

func New[V any](defaultTTL time.Duration) *Cache[V] {
	return &Cache[V]{
		defaultTTL: defaultTTL,
		entries:    make(map[string]entry[V]),
		now:        time.Now,
	}
}

// Get returns the cached value for key. An expired entry counts as absent
// and is deleted as a side effect, so a later Set starts from a clean slot.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.storedAt) > e.ttl {
		c.mu.Lock()
		// Recheck under the write lock: a concurrent Set may have
		// replaced the entry since we decided it was stale.
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL, overwriting any existing
// entry and resetting its timestamp.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len reports the number of entries currently held, including any that have
// expired but not yet been read.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
