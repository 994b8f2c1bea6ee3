package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Position is a longitude/latitude pair in degrees
type Position struct {
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
}

// Valid reports whether both coordinates are finite and inside their ranges
func (p Position) Valid() bool {
	if math.IsNaN(p.Longitude) || math.IsNaN(p.Latitude) ||
		math.IsInf(p.Longitude, 0) || math.IsInf(p.Latitude, 0) {
		return false
	}
	return p.Longitude >= -180 && p.Longitude <= 180 && p.Latitude >= -90 && p.Latitude <= 90
}

// Hour is an hour of a 24h clock. An invalid Hour stands for a value that could not be
// parsed; it marshals to null and prints as NaN.
type Hour struct {
	Value int  `dynamodbav:"value"`
	Valid bool `dynamodbav:"valid"`
}

// NewHour returns a valid Hour
func NewHour(v int) Hour {
	return Hour{Value: v, Valid: true}
}

// NaNHour is the sentinel for an unparseable hour
var NaNHour = Hour{}

func (h Hour) String() string {
	if !h.Valid {
		return "NaN"
	}
	return strconv.Itoa(h.Value)
}

// Label renders the hour the way the list panel shows it, e.g. "9 PM"
func (h Hour) Label() string {
	if !h.Valid {
		return "NaN"
	}
	v := h.Value % 24
	if v < 0 {
		v += 24
	}
	switch {
	case v == 0:
		return "12 AM"
	case v == 12:
		return "12 PM"
	case v > 12:
		return strconv.Itoa(v-12) + " PM"
	default:
		return strconv.Itoa(v) + " AM"
	}
}

func (h Hour) MarshalJSON() ([]byte, error) {
	if !h.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(h.Value)), nil
}

func (h *Hour) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*h = NaNHour
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*h = NewHour(v)
	return nil
}

// StoreRecord is one physical store location. Records are values and are never
// modified after the catalog builds them.
type StoreRecord struct {
	ID                     string   `json:"id" dynamodbav:"id"`
	Position               Position `json:"position" dynamodbav:"position"`
	AddressLine            string   `json:"addressLine" dynamodbav:"addressLine"`
	City                   string   `json:"city" dynamodbav:"city"`
	Municipality           string   `json:"municipality" dynamodbav:"municipality"`
	AdminDivision          string   `json:"adminDivision" dynamodbav:"adminDivision"`
	Country                string   `json:"country" dynamodbav:"country"`
	PostCode               string   `json:"postCode" dynamodbav:"postCode"`
	Phone                  string   `json:"phone" dynamodbav:"phone"`
	StoreType              string   `json:"storeType" dynamodbav:"storeType"`
	IsWiFiHotSpot          bool     `json:"isWiFiHotSpot" dynamodbav:"isWiFiHotSpot"`
	IsWheelchairAccessible bool     `json:"isWheelchairAccessible" dynamodbav:"isWheelchairAccessible"`
	Opens                  Hour     `json:"opens" dynamodbav:"opens"`
	Closes                 Hour     `json:"closes" dynamodbav:"closes"`
}

// RankedEntry pairs a store with its rounded distance from a center point
type RankedEntry struct {
	Store         StoreRecord `json:"store"`
	DistanceMiles float64     `json:"distanceMiles"`
}

// Bounds is a viewport rectangle. West > East means the box crosses the antimeridian.
type Bounds struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

func (b Bounds) Contains(p Position) bool {
	if p.Latitude < b.South || p.Latitude > b.North {
		return false
	}
	if b.West <= b.East {
		return p.Longitude >= b.West && p.Longitude <= b.East
	}
	return p.Longitude >= b.West || p.Longitude <= b.East
}
