package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/storelocator/internal/config"
	"github.com/bbernstein/storelocator/internal/handler"
	"github.com/bbernstein/storelocator/internal/service"
	"github.com/rs/zerolog/log"
)

var (
	catalogHandler *handler.CatalogHandler
	setupOnce      sync.Once
	serviceFactory service.Factory = &service.DefaultFactory{}
	lambdaStart                    = lambda.Start
)

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if catalogHandler == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"responseType":"error","error":"Handler not initialized"}`,
		}, fmt.Errorf("handler not initialized")
	}
	return catalogHandler.HandleRequest(ctx, request)
}

func InitializeService() error {
	var initError error
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		svc, err := serviceFactory.NewService(context.Background(), cfg, config.GetCacheConfig())
		if err != nil {
			initError = fmt.Errorf("failed to initialize service: %w", err)
			log.Error().Err(err).Msg("Failed to initialize service")
			return
		}

		// Warm the catalog during init so the first request does not pay for the fetch
		if _, ok := svc.Loader.CatalogOrEmpty(context.Background()); !ok {
			log.Warn().Msg("Catalog unavailable at startup")
		}

		catalogHandler = handler.NewCatalogHandler(svc.Loader)
	})
	return initError
}

func main() {
	if err := InitializeService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	lambdaStart(handleRequest)
}
