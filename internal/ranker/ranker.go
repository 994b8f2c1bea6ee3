// Package ranker orders the stores visible in the viewport by distance from the map center.
package ranker

import (
	"math"
	"sort"

	"github.com/bbernstein/storelocator/internal/models"
)

const (
	earthRadiusMeters = 6371008.8
	metersPerMile     = 1609.344
)

// Rank pairs every visible store with its distance in miles from center, rounded to two
// decimals, and sorts ascending by that rounded value. Stores at equal rounded distance
// keep their input order.
func Rank(center models.Position, visible []models.StoreRecord) []models.RankedEntry {
	ranked := make([]models.RankedEntry, 0, len(visible))
	for _, store := range visible {
		ranked = append(ranked, models.RankedEntry{
			Store:         store,
			DistanceMiles: roundMiles(DistanceMiles(center, store.Position)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMiles < ranked[j].DistanceMiles
	})

	return ranked
}

// DistanceMiles is the great-circle (haversine) distance between a and b
func DistanceMiles(a, b models.Position) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c / metersPerMile
}

// roundMiles rounds half-up to two decimals
func roundMiles(miles float64) float64 {
	return math.Floor(miles*100+0.5) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
