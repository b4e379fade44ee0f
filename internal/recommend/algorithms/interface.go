// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/folio/internal/recommend"
)

// ErrUnknownMetric is returned for a distance metric name that is not supported.
var ErrUnknownMetric = errors.New("unknown distance metric")

// Metric names a distance function between two matrix rows.
type Metric string

const (
	// MetricEuclidean is the straight-line distance between rating vectors.
	MetricEuclidean Metric = "euclidean"

	// MetricCosine is 1 minus the cosine similarity of rating vectors.
	MetricCosine Metric = "cosine"
)

// ParseMetric converts a configuration string to a Metric. Empty means euclidean.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case "", MetricEuclidean:
		return MetricEuclidean, nil
	case MetricCosine:
		return MetricCosine, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// distanceFunc returns the distance between two equal-length vectors.
type distanceFunc func(a, b []float64) float64

func (m Metric) distance() distanceFunc {
	if m == MetricCosine {
		return cosineDistance
	}
	return euclideanDistance
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// cosineDistance treats a zero vector as maximally distant from everything.
func cosineDistance(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp rounding noise so identical directions report exactly 0.
	if sim > 1 {
		sim = 1
	}
	return 1 - sim
}

// ContextCancelled checks if the context has been cancelled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

var _ recommend.Index = (*KNNIndex)(nil)
