// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend implements Folio's title lookup.
//
// # Architecture
//
// A lookup is answered in one of three ways:
//
//   - Empty input: a blank title returns an empty result and touches nothing.
//   - Local hit: the title is a row of the RatingMatrix. The similarity index
//     returns the nearest rows; the queried row is dropped and the rest are
//     kept in distance order when their average rating reaches min_rating.
//   - Remote fallback: the title is unknown locally and is searched once in the
//     external catalog. min_rating does not apply to catalog matches.
//
// The matrix and the index share one row order. BuildMatrix fixes it (titles
// in byte order) and indexes are built from RatingMatrix rows, never from a
// separately derived title list.
//
// # Degradation
//
// The Catalog interface returns a CatalogOutcome whose Err explains a failed
// search. The engine collapses any failure to "no entries" and sets
// Result.Degraded, so callers see an empty answer while logs and tests keep
// the cause.
//
// # Usage
//
//	matrix, averages, err := recommend.BuildMatrix(records)
//	index, err := algorithms.NewKNNIndex(ctx, matrix, algorithms.DefaultKNNConfig())
//	engine, err := recommend.NewEngine(cfg, matrix, averages, index, catalogClient, logger)
//
//	res := engine.Lookup(ctx, recommend.Request{Title: "Dune", MinRating: 0.5}, history)
//
// # Thread Safety
//
// The engine holds no mutable lookup state apart from atomic counters. Each
// session supplies its own History; histories are never shared.
package recommend
