package viewport

import (
	"sync"

	"github.com/bbernstein/storelocator/internal/models"
)

// CatalogView is an in-process MapView over a loaded catalog. The bounds filter stands in
// for the renderer's rendered-shapes query.
type CatalogView struct {
	catalog  *models.Catalog
	camera   Camera
	handlers []func(Camera)
	mu       sync.RWMutex
}

func NewCatalogView(catalog *models.Catalog, camera Camera) *CatalogView {
	return &CatalogView{
		catalog: catalog,
		camera:  camera,
	}
}

func (v *CatalogView) Camera() Camera {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.camera
}

func (v *CatalogView) RenderedStores(bounds models.Bounds) []models.StoreRecord {
	return v.catalog.Within(bounds)
}

func (v *CatalogView) OnRender(handler func(Camera)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.handlers = append(v.handlers, handler)
}

// Render moves the camera and notifies handlers in registration order
func (v *CatalogView) Render(camera Camera) {
	v.mu.Lock()
	v.camera = camera
	handlers := append([]func(Camera){}, v.handlers...)
	v.mu.Unlock()

	for _, h := range handlers {
		h(camera)
	}
}

// Catalog returns the catalog the view draws from
func (v *CatalogView) Catalog() *models.Catalog {
	return v.catalog
}
