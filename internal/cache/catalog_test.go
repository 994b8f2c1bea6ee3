package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/bbernstein/storelocator/internal/models"
	"github.com/stretchr/testify/assert"
)

// fakeClock implements a mock time source for testing
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func createTestCatalog() *models.Catalog {
	return &models.Catalog{
		Source: "test",
		Records: []models.StoreRecord{
			{
				ID:          "1",
				Position:    models.Position{Longitude: -122.33, Latitude: 47.60},
				AddressLine: "123 Main St",
				City:        "Seattle",
				Opens:       models.NewHour(7),
				Closes:      models.NewHour(21),
			},
			{
				ID:          "2",
				Position:    models.Position{Longitude: -122.20, Latitude: 47.61},
				AddressLine: "500 Bellevue Way",
				City:        "Bellevue",
				Opens:       models.NaNHour,
				Closes:      models.NewHour(20),
			},
		},
		Skipped:  1,
		LoadedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCatalogCache(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewCatalogCache(time.Hour)
	c.clock = clock

	assert.Nil(t, c.GetCatalog(), "empty cache should miss")

	catalog := createTestCatalog()
	c.SetCatalog(catalog)
	assert.Same(t, catalog, c.GetCatalog())

	clock.Advance(59 * time.Minute)
	assert.Same(t, catalog, c.GetCatalog())

	clock.Advance(2 * time.Minute)
	assert.Nil(t, c.GetCatalog(), "entry should expire after the TTL")
}

func TestCatalogCacheWithoutTTL(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := NewCatalogCache(0)
	c.clock = clock

	catalog := createTestCatalog()
	c.SetCatalog(catalog)
	clock.Advance(365 * 24 * time.Hour)
	assert.Same(t, catalog, c.GetCatalog())
}

func TestCatalogCacheConcurrentAccess(t *testing.T) {
	c := NewCatalogCache(time.Hour)
	catalog := createTestCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.SetCatalog(catalog)
		}()
		go func() {
			defer wg.Done()
			_ = c.GetCatalog()
		}()
	}
	wg.Wait()

	assert.Same(t, catalog, c.GetCatalog())
}
