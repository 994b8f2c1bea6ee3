package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/storelocator/internal/api"
	"github.com/bbernstein/storelocator/internal/viewport"
)

// CatalogHandler serves the whole catalog as GeoJSON for the map's data source
type CatalogHandler struct {
	catalogs CatalogProvider
}

func NewCatalogHandler(catalogs CatalogProvider) *CatalogHandler {
	return &CatalogHandler{
		catalogs: catalogs,
	}
}

// HandleRequest answers 503 with the no-data message when the catalog could not be
// loaded, so clients can tell an outage from a catalog with no stores.
func (h *CatalogHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	catalog, ok := h.catalogs.CatalogOrEmpty(ctx)
	if !ok {
		return api.Error(viewport.NoDataMessage, http.StatusServiceUnavailable)
	}
	return api.Success(api.NewCatalogResponse(catalog))
}
