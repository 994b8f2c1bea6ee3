package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/bbernstein/storelocator/internal/cache"
	"github.com/bbernstein/storelocator/internal/models"
	"github.com/rs/zerolog/log"
)

// SnapshotStore persists parsed catalogs between cold starts
type SnapshotStore interface {
	GetCatalog(ctx context.Context, source string) (*models.Catalog, error)
	SaveCatalog(ctx context.Context, catalog *models.Catalog) error
}

// Loader builds the catalog once and hands the same read-only value to every caller
type Loader struct {
	source    Source
	memory    *cache.CatalogCache
	snapshots SnapshotStore
	timeout   time.Duration
	now       func() time.Time
	loadMutex sync.Mutex
}

type LoaderOptions struct {
	Source Source
	Memory *cache.CatalogCache
	// Optional
	Snapshots SnapshotStore
	// Bounds a single fetch; zero means only the caller's context applies
	FetchTimeout time.Duration
}

func NewLoader(opts LoaderOptions) *Loader {
	memory := opts.Memory
	if memory == nil {
		memory = cache.NewCatalogCache(0)
	}
	return &Loader{
		source:    opts.Source,
		memory:    memory,
		snapshots: opts.Snapshots,
		timeout:   opts.FetchTimeout,
		now:       time.Now,
	}
}

// Catalog returns the loaded catalog, fetching and parsing it on first use. A fetch
// failure returns a *NetworkError and nothing is cached, so the next call tries again.
func (l *Loader) Catalog(ctx context.Context) (*models.Catalog, error) {
	if catalog := l.memory.GetCatalog(); catalog != nil {
		return catalog, nil
	}

	l.loadMutex.Lock()
	defer l.loadMutex.Unlock()

	// Another caller may have finished loading while we waited
	if catalog := l.memory.GetCatalog(); catalog != nil {
		return catalog, nil
	}

	if catalog := l.fromSnapshot(ctx); catalog != nil {
		l.memory.SetCatalog(catalog)
		return catalog, nil
	}

	catalog, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}
	l.memory.SetCatalog(catalog)

	if l.snapshots != nil {
		if err := l.snapshots.SaveCatalog(ctx, catalog); err != nil {
			log.Error().Err(err).Str("source", catalog.Source).Msg("Failed to save catalog snapshot")
		}
	}

	return catalog, nil
}

// CatalogOrEmpty is Catalog with the empty-catalog fallback; ok is false when the
// catalog could not be loaded.
func (l *Loader) CatalogOrEmpty(ctx context.Context) (catalog *models.Catalog, ok bool) {
	catalog, err := l.Catalog(ctx)
	if err != nil {
		log.Warn().Err(err).Str("source", l.source.Name()).Msg("Serving empty catalog")
		return models.EmptyCatalog(l.source.Name()), false
	}
	return catalog, true
}

func (l *Loader) fromSnapshot(ctx context.Context) *models.Catalog {
	if l.snapshots == nil {
		return nil
	}

	catalog, err := l.snapshots.GetCatalog(ctx, l.source.Name())
	if err != nil {
		log.Error().Err(err).Str("source", l.source.Name()).Msg("Failed to read catalog snapshot")
		return nil
	}
	if catalog == nil {
		log.Debug().Str("source", l.source.Name()).Msg("Catalog snapshot MISS")
		return nil
	}

	log.Debug().Str("source", l.source.Name()).Int("record_count", len(catalog.Records)).Msg("Catalog snapshot HIT")
	return catalog
}

func (l *Loader) fetch(ctx context.Context) (*models.Catalog, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := l.now()
	text, err := l.source.FetchText(ctx)
	if err != nil {
		log.Error().Err(err).Str("source", l.source.Name()).Msg("Fetching catalog failed")
		return nil, err
	}

	records, skipped := Load(text)
	catalog := &models.Catalog{
		Source:   l.source.Name(),
		Records:  records,
		Skipped:  skipped,
		LoadedAt: l.now().UTC(),
	}

	log.Info().
		Str("source", catalog.Source).
		Int("record_count", len(records)).
		Int("skipped_rows", skipped).
		Dur("elapsed", l.now().Sub(start)).
		Msg("Catalog loaded")

	return catalog, nil
}
