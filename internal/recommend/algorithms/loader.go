// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// Index sources reported by LoadOrFit.
const (
	SourceLoaded = "loaded"
	SourceFitted = "fitted"
)

// LoaderOptions controls LoadOrFit.
type LoaderOptions struct {
	// Store holds persisted artifacts. Nil disables loading and saving.
	Store *storage.Store

	// Persist saves a freshly fitted index back to Store.
	Persist bool

	// KeepVersions prunes older artifacts after a save. Zero keeps all.
	KeepVersions int

	// RecordCount is recorded in the artifact metadata.
	RecordCount int
}

// LoadOrFit returns the latest persisted index for m when one exists, was
// fitted with cfg.Metric and matches the matrix row order. Otherwise it fits
// a new index and, when opts.Persist is set, saves it.
//
// A missing, stale or unreadable artifact is never an error; only a failed
// fit is.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func LoadOrFit(ctx context.Context, m *recommend.RatingMatrix, cfg KNNConfig, opts LoaderOptions, logger zerolog.Logger) (*KNNIndex, string, error) {
	logger = logger.With().Str("component", "index_loader").Logger()

	if opts.Store != nil {
		idx, meta, err := LoadKNNIndex(ctx, opts.Store, m, 0)
		switch {
		case err == nil && idx.Metric() == cfg.Metric:
			logger.Info().
				Int("version", meta.Version).
				Str("metric", string(idx.Metric())).
				Time("trained_at", meta.TrainedAt).
				Msg("Similarity index loaded")
			return idx, SourceLoaded, nil
		case err == nil:
			logger.Info().
				Int("version", meta.Version).
				Str("artifact_metric", string(idx.Metric())).
				Str("metric", string(cfg.Metric)).
				Msg("Similarity artifact uses a different metric, refitting")
		case errors.Is(err, storage.ErrNotFound):
			logger.Info().Str("dir", opts.Store.Dir()).Msg("No similarity artifact found, fitting")
		default:
			logger.Warn().Err(err).Msg("Similarity artifact rejected, fitting")
		}
	}

	idx, err := NewKNNIndex(ctx, m, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("fit similarity index: %w", err)
	}
	logger.Info().
		Int("rows", idx.Len()).
		Int("k", idx.K()).
		Str("metric", string(idx.Metric())).
		Dur("duration", idx.FitDuration()).
		Msg("Similarity index fitted")

	if opts.Store != nil && opts.Persist {
		persist(ctx, idx, opts, logger)
	}
	return idx, SourceFitted, nil
}

// persist saves idx and prunes old versions. Failures are logged only.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func persist(ctx context.Context, idx *KNNIndex, opts LoaderOptions, logger zerolog.Logger) {
	version, err := idx.Save(ctx, opts.Store, storage.ModelMetadata{RecordCount: opts.RecordCount})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to persist similarity index")
		return
	}
	logger.Info().Int("version", version).Msg("Similarity index persisted")

	if opts.KeepVersions <= 0 {
		return
	}
	removed, err := opts.Store.Prune(ctx, ArtifactName, opts.KeepVersions)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to prune similarity artifacts")
		return
	}
	if removed > 0 {
		logger.Debug().Int("removed", removed).Msg("Pruned similarity artifacts")
	}
}
