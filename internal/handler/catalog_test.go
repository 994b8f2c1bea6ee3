package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/storelocator/internal/api"
	"github.com/bbernstein/storelocator/internal/models"
	"github.com/bbernstein/storelocator/internal/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_HandleRequest(t *testing.T) {
	tests := []struct {
		name         string
		catalog      *models.Catalog
		wantFeatures int
	}{
		{name: "loaded catalog", catalog: createTestCatalog(), wantFeatures: 3},
		{name: "loaded catalog without stores", catalog: models.EmptyCatalog("test"), wantFeatures: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockCatalogProvider{catalog: tt.catalog, available: true}
			handler := NewCatalogHandler(provider)

			response, err := handler.HandleRequest(context.Background(), events.APIGatewayProxyRequest{})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, response.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
			assert.Equal(t, "catalog", body["responseType"])
			assert.Equal(t, "FeatureCollection", body["type"])
			assert.Len(t, body["features"], tt.wantFeatures)
		})
	}
}

func TestCatalogHandler_UnavailableIsDistinct(t *testing.T) {
	empty, err := NewCatalogHandler(&mockCatalogProvider{catalog: models.EmptyCatalog("test"), available: true}).
		HandleRequest(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)

	unavailable, err := NewCatalogHandler(&mockCatalogProvider{available: false}).
		HandleRequest(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, unavailable.StatusCode)
	assert.NotEqual(t, empty.StatusCode, unavailable.StatusCode)
	assert.NotEqual(t, empty.Body, unavailable.Body)

	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(unavailable.Body), &body))
	assert.Equal(t, "error", body.ResponseType)
	assert.Equal(t, viewport.NoDataMessage, body.Error)
}
