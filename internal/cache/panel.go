package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bbernstein/storelocator/internal/config"
	"github.com/hashicorp/golang-lru/v2"
)

type PanelCacheEntry struct {
	Body      string // Marshaled list panel response
	ExpiresAt time.Time
}

// PanelCache keeps recently rendered list panels keyed by request
type PanelCache struct {
	lru    *lru.Cache[string, *PanelCacheEntry]
	ttl    time.Duration
	clock  clock
	mu     sync.Mutex
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewPanelCache(cfg *config.CacheConfig) (*PanelCache, error) {
	lruCache, err := lru.New[string, *PanelCacheEntry](cfg.PanelLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &PanelCache{
		lru:   lruCache,
		ttl:   cfg.GetPanelLRUTTL(),
		clock: systemClock{},
	}, nil
}

// PanelKey builds the cache key for a list request against a catalog snapshot
func PanelKey(loadedAt time.Time, lon, lat, zoom float64, bbox string) string {
	return fmt.Sprintf("%d|%g|%g|%g|%s", loadedAt.UnixNano(), lon, lat, zoom, bbox)
}

func (c *PanelCache) Add(key, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, &PanelCacheEntry{
		Body:      body,
		ExpiresAt: c.clock.Now().Add(c.ttl),
	})
}

func (c *PanelCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return "", false
	}

	if c.clock.Now().After(entry.ExpiresAt) {
		c.lru.Remove(key)
		c.misses.Add(1)
		return "", false
	}

	c.hits.Add(1)
	return entry.Body, true
}

// GetCacheStats returns statistics about cache hits and misses
func (c *PanelCache) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"panel_hits":   c.hits.Load(),
		"panel_misses": c.misses.Load(),
	}
}

func (c *PanelCache) Len() int {
	return c.lru.Len()
}

// Clear removes all entries from the LRU cache
func (c *PanelCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
