package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionValid(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{name: "seattle", pos: Position{Longitude: -122.33, Latitude: 47.60}, want: true},
		{name: "edges", pos: Position{Longitude: 180, Latitude: -90}, want: true},
		{name: "longitude out of range", pos: Position{Longitude: 180.1, Latitude: 0}, want: false},
		{name: "latitude out of range", pos: Position{Longitude: 0, Latitude: 91}, want: false},
		{name: "NaN", pos: Position{Longitude: math.NaN(), Latitude: 0}, want: false},
		{name: "infinite", pos: Position{Longitude: 0, Latitude: math.Inf(1)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.Valid())
		})
	}
}

func TestHourJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Opens  Hour `json:"opens"`
		Closes Hour `json:"closes"`
	}{Opens: NewHour(7), Closes: NaNHour})
	require.NoError(t, err)
	assert.JSONEq(t, `{"opens":7,"closes":null}`, string(data))

	var decoded struct {
		Opens  Hour `json:"opens"`
		Closes Hour `json:"closes"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, NewHour(7), decoded.Opens)
	assert.False(t, decoded.Closes.Valid)
}

func TestHourLabel(t *testing.T) {
	tests := []struct {
		hour Hour
		want string
	}{
		{NewHour(0), "12 AM"},
		{NewHour(7), "7 AM"},
		{NewHour(12), "12 PM"},
		{NewHour(21), "9 PM"},
		{NewHour(25), "1 AM"},
		{NaNHour, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hour.Label())
		})
	}
	assert.Equal(t, "NaN", NaNHour.String())
	assert.Equal(t, "21", NewHour(21).String())
}

func TestBoundsContains(t *testing.T) {
	seattle := Bounds{West: -123, South: 47, East: -122, North: 48}
	assert.True(t, seattle.Contains(Position{Longitude: -122.33, Latitude: 47.60}))
	assert.False(t, seattle.Contains(Position{Longitude: -121.9, Latitude: 47.60}))
	assert.False(t, seattle.Contains(Position{Longitude: -122.33, Latitude: 46.9}))

	pacific := Bounds{West: 170, South: -10, East: -170, North: 10}
	assert.True(t, pacific.Contains(Position{Longitude: 179, Latitude: 0}))
	assert.True(t, pacific.Contains(Position{Longitude: -175, Latitude: 0}))
	assert.False(t, pacific.Contains(Position{Longitude: 0, Latitude: 0}))
}

func TestCatalogWithin(t *testing.T) {
	catalog := &Catalog{
		Records: []StoreRecord{
			{ID: "1", Position: Position{Longitude: -122.33, Latitude: 47.60}},
			{ID: "2", Position: Position{Longitude: -73.98, Latitude: 40.75}},
			{ID: "3", Position: Position{Longitude: -122.20, Latitude: 47.61}},
			{ID: "4", Position: Position{Longitude: -122.33, Latitude: 47.60}},
		},
	}

	visible := catalog.Within(Bounds{West: -123, South: 47, East: -122, North: 48})
	require.Len(t, visible, 3)
	assert.Equal(t, "1", visible[0].ID)
	assert.Equal(t, "3", visible[1].ID)
	assert.Equal(t, "4", visible[2].ID)

	assert.Empty(t, catalog.Within(Bounds{West: 0, South: 0, East: 1, North: 1}))
	assert.Equal(t, 4, catalog.Len())

	var missing *Catalog
	assert.Equal(t, 0, missing.Len())
	assert.NotNil(t, missing.Within(Bounds{}))
	assert.Equal(t, 0, EmptyCatalog("test").Len())
}
