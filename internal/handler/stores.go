package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/storelocator/internal/api"
	"github.com/bbernstein/storelocator/internal/cache"
	"github.com/bbernstein/storelocator/internal/models"
	"github.com/bbernstein/storelocator/internal/ranker"
	"github.com/bbernstein/storelocator/internal/viewport"
	"github.com/rs/zerolog/log"
)

// DefaultRadiusMiles sizes the viewport when a detail request has no bbox
const DefaultRadiusMiles = 10.0

// CatalogProvider hands out the loaded catalog; ok is false when it could not be loaded
type CatalogProvider interface {
	CatalogOrEmpty(ctx context.Context) (*models.Catalog, bool)
}

type StoresHandler struct {
	catalogs  CatalogProvider
	panels    *cache.PanelCache
	threshold float64
	radius    float64
}

type StoresOption func(*StoresHandler)

// WithPanelCache caches rendered panels between requests
func WithPanelCache(panels *cache.PanelCache) StoresOption {
	return func(h *StoresHandler) {
		h.panels = panels
	}
}

func WithThreshold(threshold float64) StoresOption {
	return func(h *StoresHandler) {
		h.threshold = threshold
	}
}

func WithDefaultRadius(miles float64) StoresOption {
	return func(h *StoresHandler) {
		h.radius = miles
	}
}

func NewStoresHandler(catalogs CatalogProvider, opts ...StoresOption) *StoresHandler {
	h := &StoresHandler{
		catalogs:  catalogs,
		threshold: viewport.MaxClusterZoomLevel,
		radius:    DefaultRadiusMiles,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *StoresHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	center, err := api.ParseCoordinates(params)
	if err != nil {
		return parameterError(err)
	}

	zoom, err := api.ParseZoom(params)
	if err != nil {
		return parameterError(err)
	}

	bounds, ok, err := api.ParseBounds(params)
	if err != nil {
		return parameterError(err)
	}
	if !ok {
		bounds = boundsAround(center, h.radius)
	}

	catalog, available := h.catalogs.CatalogOrEmpty(ctx)

	key := cache.PanelKey(catalog.LoadedAt, center.Longitude, center.Latitude, zoom, params["bbox"])
	if available && h.panels != nil {
		if body, hit := h.panels.Get(key); hit {
			log.Debug().Str("key", key).Msg("Panel cache HIT")
			return api.SuccessBody(body), nil
		}
	}

	view := viewport.NewCatalogView(catalog, viewport.Camera{
		Center: center,
		Zoom:   zoom,
		Bounds: bounds,
	})
	state := viewport.NewState(view,
		viewport.WithThreshold(h.threshold),
		viewport.WithDataAvailable(available),
	)
	panel := state.UpdateList()

	body, err := json.Marshal(api.NewStoreListResponse(panel))
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal store list")
		return api.Error("Internal Server Error", http.StatusInternalServerError)
	}

	// Empty fallbacks are not cached so the next request retries the load
	if available && h.panels != nil {
		h.panels.Add(key, string(body))
	}

	return api.SuccessBody(string(body)), nil
}

func parameterError(err error) (events.APIGatewayProxyResponse, error) {
	var invalidCoordErr api.InvalidCoordinatesError
	var missingErr api.MissingParameterError
	var invalidParamErr api.InvalidParameterError
	switch {
	case errors.As(err, &invalidCoordErr), errors.As(err, &missingErr), errors.As(err, &invalidParamErr):
		return api.Error(err.Error(), http.StatusBadRequest)
	default:
		return api.Error("Invalid parameters", http.StatusBadRequest)
	}
}

// boundsAround is the box reaching radiusMiles from center in each direction
func boundsAround(center models.Position, radiusMiles float64) models.Bounds {
	dLat := radiusMiles / ranker.DistanceMiles(
		models.Position{Latitude: 0},
		models.Position{Latitude: 1},
	)

	south := math.Max(center.Latitude-dLat, -90)
	north := math.Min(center.Latitude+dLat, 90)

	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat < 1e-6 || dLat/cosLat >= 180 {
		return models.Bounds{West: -180, South: south, East: 180, North: north}
	}
	dLon := dLat / cosLat

	west := center.Longitude - dLon
	if west < -180 {
		west += 360
	}
	east := center.Longitude + dLon
	if east > 180 {
		east -= 360
	}
	return models.Bounds{West: west, South: south, East: east, North: north}
}
