// Package viewport owns the display state of the store map: which mode the page is in
// for the current zoom, and what the nearby-stores panel shows.
package viewport

import "github.com/bbernstein/storelocator/internal/models"

// MaxClusterZoomLevel is the zoom at which clusters break apart into individual stores
const MaxClusterZoomLevel = 11.0

type Mode int

const (
	// Overview shows clusters and guidance text, no list
	Overview Mode = iota
	// Detail shows individual stores and the ranked list
	Detail
)

func (m Mode) String() string {
	switch m {
	case Detail:
		return "detail"
	default:
		return "overview"
	}
}

// ModeFor compares zoom to the clustering threshold. There is no hysteresis.
func ModeFor(zoom, threshold float64) Mode {
	if zoom < threshold {
		return Overview
	}
	return Detail
}

// Camera is what the map currently shows
type Camera struct {
	Center models.Position
	Zoom   float64
	Bounds models.Bounds
}

// MapView abstracts the rendering engine. RenderedStores returns the stores drawn inside
// bounds; OnRender registers a handler called after every camera change.
type MapView interface {
	Camera() Camera
	RenderedStores(bounds models.Bounds) []models.StoreRecord
	OnRender(handler func(Camera))
}
