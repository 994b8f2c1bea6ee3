package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bbernstein/storelocator/internal/models"
	"github.com/bbernstein/storelocator/internal/viewport"
)

// StoreListItem is one row of the nearby-stores list
type StoreListItem struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	City         string      `json:"city"`
	Closes       models.Hour `json:"closes"`
	OpensUntil   string      `json:"opensUntil"`
	Distance     float64     `json:"distance"`
	DistanceText string      `json:"distanceText"`
}

type StoreListResponse struct {
	APIResponse
	Mode                string          `json:"mode"`
	Message             string          `json:"message,omitempty"`
	Center              models.Position `json:"center"`
	CenterMarkerVisible bool            `json:"centerMarkerVisible"`
	Items               []StoreListItem `json:"items"`
}

func NewStoreListItem(entry models.RankedEntry) StoreListItem {
	return StoreListItem{
		ID:           entry.Store.ID,
		Title:        entry.Store.AddressLine,
		City:         entry.Store.City,
		Closes:       entry.Store.Closes,
		OpensUntil:   fmt.Sprintf("Open until %s", entry.Store.Closes.Label()),
		Distance:     entry.DistanceMiles,
		DistanceText: fmt.Sprintf("%s miles away", strconv.FormatFloat(entry.DistanceMiles, 'f', -1, 64)),
	}
}

func NewStoreListResponse(panel viewport.Panel) *StoreListResponse {
	items := make([]StoreListItem, 0, len(panel.Items))
	for _, entry := range panel.Items {
		items = append(items, NewStoreListItem(entry))
	}

	return &StoreListResponse{
		APIResponse:         APIResponse{ResponseType: "stores"},
		Mode:                panel.Mode.String(),
		Message:             panel.Message,
		Center:              panel.Center,
		CenterMarkerVisible: panel.CenterMarkerVisible,
		Items:               items,
	}
}

// CatalogResponse is a GeoJSON FeatureCollection with the load summary as foreign members
type CatalogResponse struct {
	APIResponse
	models.FeatureCollection
	Source   string    `json:"source"`
	Skipped  int       `json:"skipped"`
	LoadedAt time.Time `json:"loadedAt"`
}

func NewCatalogResponse(catalog *models.Catalog) *CatalogResponse {
	resp := &CatalogResponse{
		APIResponse:       APIResponse{ResponseType: "catalog"},
		FeatureCollection: catalog.FeatureCollection(),
	}
	if catalog != nil {
		resp.Source = catalog.Source
		resp.Skipped = catalog.Skipped
		resp.LoadedAt = catalog.LoadedAt
	}
	return resp
}
