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
	storesHandler  *handler.StoresHandler
	setupOnce      sync.Once
	serviceFactory service.Factory = &service.DefaultFactory{}
	lambdaStart                    = lambda.Start
)

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if storesHandler == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"responseType":"error","error":"Handler not initialized"}`,
		}, fmt.Errorf("handler not initialized")
	}

	log.Info().Msg("Handling Lambda request")
	return storesHandler.HandleRequest(ctx, request)
}

func InitializeService() error {
	var initError error
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()
		log.Info().Str("env", cfg.Environment).Msg("Environment")

		svc, err := serviceFactory.NewService(context.Background(), cfg, config.GetCacheConfig())
		if err != nil {
			initError = fmt.Errorf("failed to initialize service: %w", err)
			log.Error().Err(err).Msg("Failed to initialize service")
			return
		}

		opts := []handler.StoresOption{handler.WithThreshold(cfg.MaxClusterZoom)}
		if svc.Panels != nil {
			opts = append(opts, handler.WithPanelCache(svc.Panels))
		}
		storesHandler = handler.NewStoresHandler(svc.Loader, opts...)
	})
	return initError
}

func main() {
	if err := InitializeService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	lambdaStart(handleRequest)
}
