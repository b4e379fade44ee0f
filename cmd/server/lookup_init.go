// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/history"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
	"github.com/tomtom215/folio/internal/recommend/storage"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

// artifactsKept is how many similarity artifacts survive a persist.
const artifactsKept = 3

// LookupComponents holds everything a lookup needs.
type LookupComponents struct {
	Engine  *recommend.Engine
	Catalog *catalog.Service
	Index   *algorithms.KNNIndex
}

// initLookup reads the ratings file, builds the matrix, loads or fits the
// similarity index and creates the engine. Any failure is fatal to startup.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initLookup(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*LookupComponents, error) {
	records, err := database.ReadRatings(ctx, &cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("read ratings: %w", err)
	}

	matrix, averages, err := recommend.BuildMatrix(records)
	if err != nil {
		return nil, fmt.Errorf("build rating matrix: %w", err)
	}
	metrics.SetDatasetSize(matrix.NumRecords(), matrix.Len(), matrix.NumUsers())
	logger.Info().
		Int("records", matrix.NumRecords()).
		Int("titles", matrix.Len()).
		Int("users", matrix.NumUsers()).
		Msg("Rating matrix built")

	index, err := initIndex(ctx, cfg, matrix, logger)
	if err != nil {
		return nil, err
	}

	svc := catalog.New(&cfg.Catalog, logger)

	engine, err := recommend.NewEngine(engineConfig(cfg), matrix, averages, index, svc, logger)
	if err != nil {
		return nil, fmt.Errorf("create lookup engine: %w", err)
	}

	return &LookupComponents{Engine: engine, Catalog: svc, Index: index}, nil
}

// initIndex loads the persisted similarity index from Dataset.ModelDir or
// fits one. A model directory that cannot be opened only disables persistence.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initIndex(ctx context.Context, cfg *config.Config, matrix *recommend.RatingMatrix, logger zerolog.Logger) (*algorithms.KNNIndex, error) {
	metric, err := algorithms.ParseMetric(cfg.Recommend.Metric)
	if err != nil {
		return nil, err
	}

	knnCfg := algorithms.DefaultKNNConfig()
	knnCfg.K = cfg.Recommend.Neighbors
	knnCfg.Metric = metric
	knnCfg.NumWorkers = runtime.GOMAXPROCS(0)

	opts := algorithms.LoaderOptions{
		Persist:      true,
		KeepVersions: artifactsKept,
		RecordCount:  matrix.NumRecords(),
	}
	if dir := cfg.Dataset.ModelDir; dir != "" {
		store, err := storage.NewStore(dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("Model directory unavailable, index will not be persisted")
		} else {
			opts.Store = store
		}
	}

	index, source, err := algorithms.LoadOrFit(ctx, matrix, knnCfg, opts, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("source", source).Str("metric", string(index.Metric())).Msg("Similarity index ready")
	return index, nil
}

// engineConfig maps the recommend section onto the engine configuration.
func engineConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.Neighbors = cfg.Recommend.Neighbors
	rc.EnrichLinks = cfg.Recommend.EnrichLinks
	rc.EnrichWorkers = cfg.Recommend.EnrichWorkers
	return rc
}

// catalogCacheTask drops expired catalog outcomes so the cache does not hold
// stale entries until they are evicted by size.
func catalogCacheTask(svc *catalog.Service) services.MaintenanceTask {
	return services.MaintenanceTask{
		Name: "catalog-cache-expiry",
		Run: func(context.Context) error {
			svc.PurgeCache()
			return nil
		},
	}
}

// historySessionsTask refreshes the live session gauge.
func historySessionsTask(store *history.Store) services.MaintenanceTask {
	return services.MaintenanceTask{
		Name: "history-sessions",
		Run: func(ctx context.Context) error {
			n, err := store.Sessions(ctx)
			if err != nil {
				return err
			}
			metrics.HistorySessions.Set(float64(n))
			return nil
		},
	}
}
