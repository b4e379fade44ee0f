// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package algorithms implements the nearest-neighbour similarity index used by
// the recommendation engine.
//
// KNNIndex is a brute-force k-nearest-neighbour model over the rows of a
// recommend.RatingMatrix. Every row is compared with every other row using the
// configured Metric and the closest K rows are precomputed at fit time, so
// queries are a slice lookup.
//
// # Ordering
//
// Query results are ordered by ascending distance. The queried row is always
// first with distance 0. Ties are broken by row index, which is the matrix's
// sorted title order, so results are deterministic across runs.
//
// # Metrics
//
//   - euclidean: straight-line distance (default)
//   - cosine: 1 - cosine similarity; rows with no ratings are at distance 1
//
// # Persistence
//
// A fitted index can be saved to and loaded from a storage.Store. A loaded
// artifact is bound to the matrix it is restored against and is rejected when
// the title order or user count differ.
//
// # Usage Example
//
//	idx, err := algorithms.NewKNNIndex(ctx, matrix, algorithms.DefaultKNNConfig())
//	if err != nil {
//	    return err
//	}
//	for _, n := range idx.Query("Dune", 10)[1:] {
//	    fmt.Println(n.Title, n.Distance)
//	}
//
// # Thread Safety
//
// A KNNIndex is immutable after construction and safe for concurrent queries.
package algorithms
