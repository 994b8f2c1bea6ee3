package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bbernstein/storelocator/internal/models"
)

const maxZoom = 24

// Parameter parsing helpers
func ParseCoordinates(params map[string]string) (models.Position, error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat || !hasLon {
		return models.Position{}, MissingParameterError{Name: "lat/lon"}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Position{}, InvalidParameterError{Name: "lat", Value: latStr}
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return models.Position{}, InvalidParameterError{Name: "lon", Value: lonStr}
	}

	position := models.Position{Longitude: lon, Latitude: lat}
	if !position.Valid() {
		return models.Position{}, InvalidCoordinatesError{}
	}

	return position, nil
}

// ParseZoom reads the map zoom level, 0 through 24
func ParseZoom(params map[string]string) (float64, error) {
	zoomStr, ok := params["zoom"]
	if !ok {
		return 0, MissingParameterError{Name: "zoom"}
	}

	zoom, err := strconv.ParseFloat(zoomStr, 64)
	if err != nil || math.IsNaN(zoom) || zoom < 0 || zoom > maxZoom {
		return 0, InvalidParameterError{Name: "zoom", Value: zoomStr}
	}
	return zoom, nil
}

// ParseBounds reads bbox=west,south,east,north. ok is false when no bbox was given.
func ParseBounds(params map[string]string) (bounds models.Bounds, ok bool, err error) {
	bboxStr, present := params["bbox"]
	if !present || bboxStr == "" {
		return models.Bounds{}, false, nil
	}

	parts := strings.Split(bboxStr, ",")
	if len(parts) != 4 {
		return models.Bounds{}, false, InvalidParameterError{Name: "bbox", Value: bboxStr}
	}

	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return models.Bounds{}, false, InvalidParameterError{Name: "bbox", Value: bboxStr}
		}
		values[i] = v
	}

	bounds = models.Bounds{West: values[0], South: values[1], East: values[2], North: values[3]}
	corners := []models.Position{
		{Longitude: bounds.West, Latitude: bounds.South},
		{Longitude: bounds.East, Latitude: bounds.North},
	}
	for _, c := range corners {
		if !c.Valid() {
			return models.Bounds{}, false, InvalidCoordinatesError{}
		}
	}
	if bounds.South > bounds.North {
		return models.Bounds{}, false, InvalidParameterError{Name: "bbox", Value: bboxStr}
	}

	return bounds, true, nil
}

type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "Invalid coordinates"
}

type MissingParameterError struct {
	Name string
}

func (e MissingParameterError) Error() string {
	return fmt.Sprintf("Missing parameter: %s", e.Name)
}

type InvalidParameterError struct {
	Name  string
	Value string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("Invalid %s: %q", e.Name, e.Value)
}
