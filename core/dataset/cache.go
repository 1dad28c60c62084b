package dataset

import (
	"context"
	"sync"
	"time"

	"licensee-matcher/core/table"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	table *table.Table
	built time.Time
}

// Cache holds loaded tables for a TTL. Tables handed out are shared between
// callers and must not be modified.
type Cache struct {
	store Store
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group
}

// NewCache wraps store. A ttl of zero disables caching but still
// de-duplicates concurrent loads.
func NewCache(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *Cache) fresh(name string) (*table.Table, bool) {
	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()
	if !ok || c.ttl == 0 || time.Since(e.built) > c.ttl {
		return nil, false
	}
	return e.table, true
}

// Load returns the named table, reading it from the store when it is not
// cached or has expired.
func (c *Cache) Load(ctx context.Context, name string) (*table.Table, error) {
	if t, ok := c.fresh(name); ok {
		return t, nil
	}

	v, err, _ := c.sf.Do(name, func() (interface{}, error) {
		if t, ok := c.fresh(name); ok {
			return t, nil
		}
		t, err := Load(ctx, c.store, name)
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[name] = cacheEntry{table: t, built: time.Now()}
			c.mu.Unlock()
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*table.Table), nil
}

// Invalidate drops the cached table of name.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}
