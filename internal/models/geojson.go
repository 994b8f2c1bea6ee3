package models

// Point is a GeoJSON point geometry; coordinates are [longitude, latitude]
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// StoreProperties are the feature properties the map styles and popups read
type StoreProperties struct {
	AddressLine            string `json:"addressLine"`
	City                   string `json:"city"`
	Municipality           string `json:"municipality"`
	AdminDivision          string `json:"adminDivision"`
	Country                string `json:"country"`
	PostCode               string `json:"postCode"`
	Phone                  string `json:"phone"`
	StoreType              string `json:"storeType"`
	IsWiFiHotSpot          bool   `json:"isWiFiHotSpot"`
	IsWheelchairAccessible bool   `json:"isWheelchairAccessible"`
	Opens                  Hour   `json:"opens"`
	Closes                 Hour   `json:"closes"`
}

type Feature struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Geometry   Point           `json:"geometry"`
	Properties StoreProperties `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature converts the record to a GeoJSON point feature
func (r StoreRecord) Feature() Feature {
	return Feature{
		Type: "Feature",
		ID:   r.ID,
		Geometry: Point{
			Type:        "Point",
			Coordinates: [2]float64{r.Position.Longitude, r.Position.Latitude},
		},
		Properties: StoreProperties{
			AddressLine:            r.AddressLine,
			City:                   r.City,
			Municipality:           r.Municipality,
			AdminDivision:          r.AdminDivision,
			Country:                r.Country,
			PostCode:               r.PostCode,
			Phone:                  r.Phone,
			StoreType:              r.StoreType,
			IsWiFiHotSpot:          r.IsWiFiHotSpot,
			IsWheelchairAccessible: r.IsWheelchairAccessible,
			Opens:                  r.Opens,
			Closes:                 r.Closes,
		},
	}
}

// FeatureCollection exports the catalog as the map's data source content
func (c *Catalog) FeatureCollection() FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, c.Len()),
	}
	if c == nil {
		return fc
	}
	for _, r := range c.Records {
		fc.Features = append(fc.Features, r.Feature())
	}
	return fc
}
