package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFeatureCollection(t *testing.T) {
	catalog := &Catalog{
		Records: []StoreRecord{
			{ID: "1", Position: Position{Longitude: -122.33, Latitude: 47.60}, AddressLine: "123 Main St", City: "Seattle", Closes: NewHour(21)},
			{ID: "2", Position: Position{Longitude: -122.20, Latitude: 47.61}, City: "Bellevue", IsWiFiHotSpot: true},
		},
	}

	fc := catalog.FeatureCollection()
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "1", f.ID)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, [2]float64{-122.33, 47.60}, f.Geometry.Coordinates)
	assert.Equal(t, "123 Main St", f.Properties.AddressLine)
	assert.True(t, fc.Features[1].Properties.IsWiFiHotSpot)

	body, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"coordinates":[-122.33,47.6]`)
	assert.Contains(t, string(body), `"closes":21`)
	assert.Contains(t, string(body), `"opens":null`)
}

func TestEmptyFeatureCollection(t *testing.T) {
	var nilCatalog *Catalog
	for _, c := range []*Catalog{nilCatalog, EmptyCatalog("test")} {
		body, err := json.Marshal(c.FeatureCollection())
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(body))
	}
}
