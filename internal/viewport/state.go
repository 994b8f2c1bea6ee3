package viewport

import (
	"github.com/bbernstein/storelocator/internal/models"
	"github.com/bbernstein/storelocator/internal/ranker"
	"github.com/rs/zerolog/log"
)

const (
	GuidanceMessage = "Search for a location, zoom in, or select My Location button to see individual store locations."
	NoDataMessage   = "Store data is currently unavailable."
)

// Panel is the content of the nearby-stores list
type Panel struct {
	Mode                Mode
	Message             string
	Center              models.Position
	CenterMarkerVisible bool
	Items               []models.RankedEntry
}

// State is the application state handlers work against
type State struct {
	view      MapView
	threshold float64
	// false when the catalog could not be loaded
	dataAvailable bool
	panel         Panel
}

type Option func(*State)

// WithThreshold overrides MaxClusterZoomLevel
func WithThreshold(threshold float64) Option {
	return func(s *State) {
		s.threshold = threshold
	}
}

// WithDataAvailable marks whether the catalog behind the view was loaded
func WithDataAvailable(available bool) Option {
	return func(s *State) {
		s.dataAvailable = available
	}
}

func NewState(view MapView, opts ...Option) *State {
	s := &State{
		view:          view,
		threshold:     MaxClusterZoomLevel,
		dataAvailable: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach registers UpdateList as a render handler so the panel follows the camera
func (s *State) Attach() {
	s.view.OnRender(func(Camera) {
		s.UpdateList()
	})
}

// Mode reports the display mode for the current camera
func (s *State) Mode() Mode {
	return ModeFor(s.view.Camera().Zoom, s.threshold)
}

// UpdateList recomputes the panel from the current camera
func (s *State) UpdateList() Panel {
	camera := s.view.Camera()
	mode := ModeFor(camera.Zoom, s.threshold)

	panel := Panel{
		Mode:   mode,
		Center: camera.Center,
		Items:  []models.RankedEntry{},
	}

	switch {
	case !s.dataAvailable:
		panel.Message = NoDataMessage
	case mode == Overview:
		panel.Message = GuidanceMessage
	default:
		panel.CenterMarkerVisible = true
		panel.Items = ranker.Rank(camera.Center, s.view.RenderedStores(camera.Bounds))
	}

	log.Debug().
		Str("mode", mode.String()).
		Float64("zoom", camera.Zoom).
		Int("item_count", len(panel.Items)).
		Msg("Updated store list")

	s.panel = panel
	return panel
}

// Panel returns the last computed panel
func (s *State) Panel() Panel {
	return s.panel
}
