// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// ErrCatalogOpen is returned when the circuit breaker rejects a search.
var ErrCatalogOpen = errors.New("catalog circuit breaker open")

// BreakerName is the circuit breaker name used in metrics labels.
const BreakerName = "openlibrary"

var _ recommend.Catalog = (*Breaker)(nil)

// Breaker wraps a Searcher with the circuit breaker pattern, so a failing
// Open Library stops being called for a while instead of slowing every
// lookup down to the client timeout.
type Breaker struct {
	searcher Searcher
	cb       *gobreaker.CircuitBreaker[[]recommend.CatalogEntry]
	name     string
	logger   zerolog.Logger
}

// NewBreaker creates a circuit breaker around searcher.
// With default configuration it:
//   - allows 3 requests in half-open state
//   - resets counts after 1 minute in closed state
//   - waits 2 minutes before probing an open circuit
//   - opens at a 60% failure rate once 10 requests have been seen
func NewBreaker(searcher Searcher, cfg *config.BreakerConfig, logger zerolog.Logger) *Breaker {
	b := &Breaker{
		searcher: searcher,
		name:     BreakerName,
		logger:   logger.With().Str("component", "catalog_breaker").Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(b.name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio

	b.cb = gobreaker.NewCircuitBreaker[[]recommend.CatalogEntry](gobreaker.Settings{
		Name:        b.name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= failureRatio {
				b.logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},

		// A caller giving up is not a catalog failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			b.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return b
}

// Search implements recommend.Catalog.
func (b *Breaker) Search(ctx context.Context, title string) recommend.CatalogOutcome {
	entries, err := b.execute(func() ([]recommend.CatalogEntry, error) {
		return b.searcher.SearchEntries(ctx, title)
	})
	return recommend.CatalogOutcome{Entries: entries, Err: err}
}

// execute runs fn under the breaker and updates breaker metrics.
func (b *Breaker) execute(fn func() ([]recommend.CatalogEntry, error)) ([]recommend.CatalogEntry, error) {
	entries, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			metrics.RecordCatalogRequest("rejected", 0)
			b.logger.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrCatalogOpen, err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return entries, nil
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
