// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. The
// Index, Catalog and History interfaces let the algorithms, catalog and
// history packages plug in without circular imports.

// Engine answers title lookups. It is safe for concurrent use: the matrix,
// averages and index are read-only, and history is supplied per call.
type Engine struct {
	config *Config
	logger zerolog.Logger

	matrix   *RatingMatrix
	averages AverageRatings
	index    Index
	catalog  Catalog

	// Metrics
	lookupCount    atomic.Int64
	emptyCount     atomic.Int64
	localCount     atomic.Int64
	remoteCount    atomic.Int64
	noResultsCount atomic.Int64
	degradedCount  atomic.Int64
	historyErrors  atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Lookups       int64 `json:"lookups"`
	EmptyInputs   int64 `json:"empty_inputs"`
	LocalHits     int64 `json:"local_hits"`
	RemoteHits    int64 `json:"remote_hits"`
	NoResults     int64 `json:"no_results"`
	Degraded      int64 `json:"degraded"`
	HistoryErrors int64 `json:"history_errors"`
}

// NewEngine creates a lookup engine over a built matrix and its index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, matrix *RatingMatrix, averages AverageRatings, index Index, catalog Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if matrix == nil || index == nil {
		return nil, errors.New("matrix and index are required")
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if averages == nil {
		averages = AverageRatings{}
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		matrix:   matrix,
		averages: averages,
		index:    index,
		catalog:  catalog,
	}, nil
}

// Lookup answers a single title lookup.
//
// A blank title returns OutcomeEmptyInput without touching the index, the
// catalog or hist. A title that is a matrix row is answered locally; any other
// title is searched once in the catalog. Local answers (even empty ones) and
// non-empty remote answers are appended to hist, which may be nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Lookup(ctx context.Context, req Request, hist History) *Result {
	start := time.Now()
	e.lookupCount.Add(1)

	title := strings.TrimSpace(req.Title)
	logger := e.createRequestLogger(req, title)

	var res *Result
	switch {
	case title == "":
		e.emptyCount.Add(1)
		res = &Result{Outcome: OutcomeEmptyInput, Items: []Item{}}
	case e.matrix.Contains(title):
		e.localCount.Add(1)
		res = e.lookupLocal(ctx, title, req.MinRating, logger)
	default:
		res = e.lookupRemote(ctx, title, logger)
	}
	res.Query = title

	if res.Degraded {
		e.degradedCount.Add(1)
	}
	if hist != nil && (res.Outcome == OutcomeLocal || res.Outcome == OutcomeRemote) {
		e.record(ctx, hist, res, logger)
	}

	res.Duration = time.Since(start)
	logger.Debug().
		Str("outcome", res.Outcome.String()).
		Int("returned", len(res.Items)).
		Bool("degraded", res.Degraded).
		Dur("duration", res.Duration).
		Msg("lookup complete")

	return res
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request, title string) zerolog.Logger {
	ctx := e.logger.With().Str("title", title)
	if req.RequestID != "" {
		ctx = ctx.Str("request_id", req.RequestID)
	}
	return ctx.Logger()
}

// lookupLocal serves a title found in the matrix.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) lookupLocal(ctx context.Context, title string, minRating float64, logger zerolog.Logger) *Result {
	neighbors := e.index.Query(title, e.config.Neighbors)

	// The first neighbour is the queried title itself
	if len(neighbors) > 0 {
		neighbors = neighbors[1:]
	}

	items := make([]Item, 0, len(neighbors))
	for _, n := range neighbors {
		avg := e.averages.Get(n.Title)
		if avg < minRating {
			continue
		}
		items = append(items, Item{
			Title:         n.Title,
			AverageRating: &avg,
			ImageURL:      e.matrix.ImageURL(n.Title),
		})
	}

	res := &Result{Outcome: OutcomeLocal, Items: items}

	logger.Debug().
		Int("candidates", len(neighbors)).
		Int("kept", len(items)).
		Float64("min_rating", minRating).
		Msg("local lookup filtered")

	if e.config.EnrichLinks && len(items) > 0 {
		e.enrichLinks(ctx, res, logger)
	}
	return res
}

// enrichLinks attaches the first catalog link to each item, in parallel.
// Items keep their order; a failed search leaves the link empty.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) enrichLinks(ctx context.Context, res *Result, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, e.config.EnrichTimeout)
	defer cancel()

	errs := make([]error, len(res.Items))
	sem := make(chan struct{}, e.config.EnrichWorkers)
	var wg sync.WaitGroup

	for i := range res.Items {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			outcome := e.catalog.Search(ctx, res.Items[idx].Title)
			if outcome.Err != nil {
				errs[idx] = outcome.Err
				return
			}
			if len(outcome.Entries) > 0 {
				res.Items[idx].Link = outcome.Entries[0].Link
			}
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		failed++
		if res.CatalogErr == nil {
			res.CatalogErr = err
		}
	}
	if failed > 0 {
		res.Degraded = true
		logger.Warn().
			Err(res.CatalogErr).
			Int("failed", failed).
			Int("items", len(res.Items)).
			Msg("link enrichment degraded")
	}
}

// lookupRemote serves a title unknown to the matrix from the catalog.
// The minimum rating does not apply here: catalog matches carry no rating.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) lookupRemote(ctx context.Context, title string, logger zerolog.Logger) *Result {
	outcome := e.catalog.Search(ctx, title)

	res := &Result{Items: make([]Item, 0, len(outcome.Entries))}
	if outcome.Err != nil {
		res.Degraded = true
		res.CatalogErr = outcome.Err
		logger.Warn().Err(outcome.Err).Msg("catalog search failed, returning no results")
	} else {
		for _, entry := range outcome.Entries {
			res.Items = append(res.Items, Item{
				Title:    entry.Title,
				Author:   entry.Author,
				Link:     entry.Link,
				CoverURL: entry.CoverURL,
			})
		}
	}

	if len(res.Items) == 0 {
		e.noResultsCount.Add(1)
		res.Outcome = OutcomeNoResults
		return res
	}

	e.remoteCount.Add(1)
	res.Outcome = OutcomeRemote
	return res
}

// record appends the lookup to the session history. Failures are logged and
// counted; the lookup result is still returned.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) record(ctx context.Context, hist History, res *Result, logger zerolog.Logger) {
	entry := HistoryEntry{
		Searched:        res.Query,
		Recommendations: res.Titles(),
		Outcome:         res.Outcome,
		SearchedAt:      time.Now().UTC(),
	}
	if err := hist.Append(ctx, entry); err != nil {
		e.historyErrors.Add(1)
		logger.Warn().Err(err).Msg("failed to record search history")
	}
}

// Matrix returns the rating matrix the engine serves.
func (e *Engine) Matrix() *RatingMatrix {
	return e.matrix
}

// Averages returns the average rating map.
func (e *Engine) Averages() AverageRatings {
	return e.averages
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Lookups:       e.lookupCount.Load(),
		EmptyInputs:   e.emptyCount.Load(),
		LocalHits:     e.localCount.Load(),
		RemoteHits:    e.remoteCount.Load(),
		NoResults:     e.noResultsCount.Load(),
		Degraded:      e.degradedCount.Load(),
		HistoryErrors: e.historyErrors.Load(),
	}
}
