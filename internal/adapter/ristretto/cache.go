// Package ristretto backs the registry's tool lookup cache with an
// in-process dgraph-io/ristretto cache.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache stores marshaled tool rows keyed by tool id. Entries are small and
// uniform, so capacity is sized in entries rather than bytes.
type Cache struct {
	c *ristretto.Cache[string, []byte]
}

// New creates a cache that holds up to maxEntries tool rows.
func New(maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

// Get retrieves a cached tool row.
func (c *Cache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	val, found := c.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores a tool row with the given TTL. The write is flushed before
// returning so an immediate re-resolution sees it.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.c.SetWithTTL(key, value, 1, ttl)
	c.c.Wait()
	return nil
}

// Delete drops a tool row, typically after a tool mutation.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.c.Del(key)
	return nil
}

// Close releases the cache's resources.
func (c *Cache) Close() {
	c.c.Close()
}
