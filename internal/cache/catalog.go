package cache

import (
	"sync"
	"time"

	"github.com/bbernstein/storelocator/internal/models"
)

// CatalogCache holds the loaded catalog in memory until it expires
type CatalogCache struct {
	catalog     *models.Catalog
	lastUpdated time.Time
	ttl         time.Duration
	clock       clock
	mu          sync.RWMutex
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		lastUpdated: time.Time{}, // Zero time to ensure first fetch
		ttl:         ttl,
		clock:       systemClock{},
	}
}

// GetCatalog returns the cached catalog, or nil when empty or expired
func (c *CatalogCache) GetCatalog() *models.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.catalog == nil || c.isExpired() {
		return nil
	}
	return c.catalog
}

func (c *CatalogCache) SetCatalog(catalog *models.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = catalog
	c.lastUpdated = c.clock.Now()
}

func (c *CatalogCache) isExpired() bool {
	return c.ttl > 0 && c.clock.Now().Sub(c.lastUpdated) > c.ttl
}
