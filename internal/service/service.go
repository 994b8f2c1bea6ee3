// Package service wires configuration, catalog source and caches into the pieces the
// Lambda handlers share.
package service

import (
	"context"
	"fmt"

	"github.com/bbernstein/storelocator/internal/cache"
	"github.com/bbernstein/storelocator/internal/catalog"
	"github.com/bbernstein/storelocator/internal/config"
	"github.com/bbernstein/storelocator/pkg/http/client"
	"github.com/rs/zerolog/log"
)

// Service holds what a Lambda container keeps between invocations
type Service struct {
	Config      *config.Config
	CacheConfig *config.CacheConfig
	Loader      *catalog.Loader
	// nil when CACHE_ENABLE_PANEL is off
	Panels *cache.PanelCache
}

// Factory builds a Service; tests substitute their own
type Factory interface {
	NewService(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig) (*Service, error)
}

type DefaultFactory struct{}

func (f *DefaultFactory) NewService(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig) (*Service, error) {
	return New(ctx, cfg, cacheCfg)
}

// New builds the catalog loader and caches. Nothing is fetched until the first request.
func New(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig) (*Service, error) {
	source, err := NewSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing catalog source: %w", err)
	}

	opts := catalog.LoaderOptions{
		Source:       source,
		Memory:       cache.NewCatalogCache(cacheCfg.GetCatalogTTL()),
		FetchTimeout: cfg.FetchTimeout,
	}

	if cacheCfg.EnableDynamoCache {
		dynamoClient, err := cache.NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("initializing DynamoDB client: %w", err)
		}
		opts.Snapshots = cache.NewDynamoCatalogStore(dynamoClient, cfg.CatalogTable, cacheCfg)
	}

	svc := &Service{
		Config:      cfg,
		CacheConfig: cacheCfg,
		Loader:      catalog.NewLoader(opts),
	}

	if cacheCfg.EnablePanelCache {
		svc.Panels, err = cache.NewPanelCache(cacheCfg)
		if err != nil {
			return nil, fmt.Errorf("initializing panel cache: %w", err)
		}
	}

	log.Info().
		Str("source", source.Name()).
		Bool("dynamo_snapshots", cacheCfg.EnableDynamoCache).
		Bool("panel_cache", cacheCfg.EnablePanelCache).
		Msg("Service initialized")

	return svc, nil
}

// NewSource picks the catalog location: a local file, then an S3 object, then the URL
func NewSource(ctx context.Context, cfg *config.Config) (catalog.Source, error) {
	switch {
	case cfg.CatalogFile != "":
		return catalog.NewFileSource(cfg.CatalogFile), nil
	case cfg.CatalogS3Bucket != "":
		s3Client, err := catalog.NewS3Client(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.NewS3Source(s3Client, cfg.CatalogS3Bucket, cfg.CatalogS3Key), nil
	default:
		httpClient := client.New(client.Options{
			Timeout: cfg.HTTPTimeout,
		})
		return catalog.NewHTTPSource(httpClient, cfg.CatalogURL), nil
	}
}
