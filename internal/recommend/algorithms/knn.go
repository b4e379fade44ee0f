// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// ArtifactName is the storage name of persisted similarity indexes.
const ArtifactName = "similarity"

// ErrTitleOrderMismatch is returned when a persisted index does not belong to
// the matrix it is being restored against.
var ErrTitleOrderMismatch = errors.New("similarity artifact does not match rating matrix")

// KNNConfig contains configuration for the nearest-neighbour index.
type KNNConfig struct {
	// K is the number of neighbours precomputed per row, including the row
	// itself. Larger queries are answered by a full scan.
	K int

	// Metric is the distance function.
	Metric Metric

	// NumWorkers is the number of parallel workers used while fitting.
	NumWorkers int
}

// DefaultKNNConfig returns default KNN configuration.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		K:          10,
		Metric:     MetricEuclidean,
		NumWorkers: 4,
	}
}

// rowDistance is a candidate row and its distance to the query row.
type rowDistance struct {
	row  int
	dist float64
}

// KNNIndex is a brute-force nearest-neighbour index over matrix rows.
type KNNIndex struct {
	config   KNNConfig
	distance distanceFunc

	titles      []string
	rowIndex    map[string]int
	vectors     [][]float64
	fingerprint string

	// neighbors[i] holds the closest rows to row i, row i first.
	neighbors [][]rowDistance

	fittedAt    time.Time
	fitDuration time.Duration
}

// NewKNNIndex fits an index over the rows of m.
func NewKNNIndex(ctx context.Context, m *recommend.RatingMatrix, cfg KNNConfig) (*KNNIndex, error) {
	if m == nil || m.Len() == 0 {
		return nil, fmt.Errorf("fit similarity index: %w", recommend.ErrNoRatings)
	}

	idx, err := newIndexShell(m, cfg)
	if err != nil {
		return nil, err
	}

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	start := time.Now()
	n := len(idx.titles)
	idx.neighbors = make([][]rowDistance, n)

	workers := idx.config.NumWorkers
	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunkSize
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			// Each worker owns rows [lo, hi) of idx.neighbors.
			for row := lo; row < hi; row++ {
				if ContextCancelled(ctx) {
					return
				}
				idx.neighbors[row] = idx.rank(row, idx.config.K)
			}
		}(lo, hi)
	}
	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	idx.fittedAt = time.Now()
	idx.fitDuration = time.Since(start)
	return idx, nil
}

// newIndexShell validates cfg and binds the matrix rows without computing neighbours.
func newIndexShell(m *recommend.RatingMatrix, cfg KNNConfig) (*KNNIndex, error) {
	metric, err := ParseMetric(string(cfg.Metric))
	if err != nil {
		return nil, err
	}
	cfg.Metric = metric
	if cfg.K <= 0 {
		cfg.K = 10
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}

	n := m.Len()
	if cfg.K > n {
		cfg.K = n
	}

	titles := m.Titles()
	idx := &KNNIndex{
		config:   cfg,
		distance: metric.distance(),
		titles:      titles,
		rowIndex:    make(map[string]int, n),
		vectors:     make([][]float64, n),
		fingerprint: m.Fingerprint(),
	}
	for i, title := range titles {
		idx.rowIndex[title] = i
		idx.vectors[i] = m.Row(i)
	}
	return idx, nil
}

// rank returns the limit closest rows to query. The query row is pinned to
// distance 0 and wins every tie, other ties go to the lower row index.
func (k *KNNIndex) rank(query, limit int) []rowDistance {
	n := len(k.vectors)
	candidates := make([]rowDistance, n)
	qv := k.vectors[query]
	for row := 0; row < n; row++ {
		if row == query {
			candidates[row] = rowDistance{row: row}
			continue
		}
		candidates[row] = rowDistance{row: row, dist: k.distance(qv, k.vectors[row])}
	}

	sort.Slice(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.dist != cb.dist {
			return ca.dist < cb.dist
		}
		if ca.row == query || cb.row == query {
			return ca.row == query
		}
		return ca.row < cb.row
	})

	if limit < n {
		candidates = candidates[:limit]
	}
	return candidates
}

// Query returns the k nearest rows to title by ascending distance, title
// itself first. It panics with recommend.IndexLookupFault for an unknown title.
func (k *KNNIndex) Query(title string, limit int) []recommend.Neighbor {
	row, ok := k.rowIndex[title]
	if !ok {
		panic(recommend.IndexLookupFault{Title: title})
	}
	if limit <= 0 {
		return nil
	}

	ranked := k.neighbors[row]
	if limit > len(ranked) && len(ranked) < len(k.titles) {
		ranked = k.rank(row, limit)
	}
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}

	out := make([]recommend.Neighbor, len(ranked))
	for i, rd := range ranked {
		out[i] = recommend.Neighbor{Title: k.titles[rd.row], Distance: rd.dist}
	}
	return out
}

// Contains reports whether title is a row of the index.
func (k *KNNIndex) Contains(title string) bool {
	_, ok := k.rowIndex[title]
	return ok
}

// Len returns the number of indexed rows.
func (k *KNNIndex) Len() int {
	return len(k.titles)
}

// K returns the number of precomputed neighbours per row.
func (k *KNNIndex) K() int {
	return k.config.K
}

// Metric returns the distance metric.
func (k *KNNIndex) Metric() Metric {
	return k.config.Metric
}

// FittedAt returns when the neighbour table was computed.
func (k *KNNIndex) FittedAt() time.Time {
	return k.fittedAt
}

// FitDuration returns how long fitting took. It is zero for restored indexes.
func (k *KNNIndex) FitDuration() time.Duration {
	return k.fitDuration
}

// State returns the serializable form of the index.
func (k *KNNIndex) State() storage.SimilarityState {
	state := storage.SimilarityState{
		Metric:      string(k.config.Metric),
		K:           k.config.K,
		Titles:      append([]string(nil), k.titles...),
		Fingerprint: k.fingerprint,
		Rows:        make([][]int, len(k.neighbors)),
		Distances:   make([][]float64, len(k.neighbors)),
	}
	if len(k.vectors) > 0 {
		state.NumUsers = len(k.vectors[0])
	}
	for i, ranked := range k.neighbors {
		rows := make([]int, len(ranked))
		dists := make([]float64, len(ranked))
		for j, rd := range ranked {
			rows[j] = rd.row
			dists[j] = rd.dist
		}
		state.Rows[i] = rows
		state.Distances[i] = dists
	}
	return state
}

// RestoreKNNIndex rebuilds an index from a persisted state. The state must have
// been fitted on a matrix with the same titles in the same order, the same
// users and the same ratings as m.
//
//nolint:gocritic // state passed by value mirrors storage.Load targets
func RestoreKNNIndex(m *recommend.RatingMatrix, state storage.SimilarityState) (*KNNIndex, error) {
	if m == nil || m.Len() == 0 {
		return nil, fmt.Errorf("restore similarity index: %w", recommend.ErrNoRatings)
	}

	titles := m.Titles()
	if len(state.Titles) != len(titles) || state.NumUsers != m.NumUsers() {
		return nil, fmt.Errorf("%w: artifact has %d titles x %d users, matrix has %d x %d",
			ErrTitleOrderMismatch, len(state.Titles), state.NumUsers, len(titles), m.NumUsers())
	}
	for i, title := range titles {
		if state.Titles[i] != title {
			return nil, fmt.Errorf("%w: row %d is %q in artifact, %q in matrix",
				ErrTitleOrderMismatch, i, state.Titles[i], title)
		}
	}

	idx, err := newIndexShell(m, KNNConfig{K: state.K, Metric: Metric(state.Metric)})
	if err != nil {
		return nil, err
	}
	if state.Fingerprint != idx.fingerprint {
		return nil, fmt.Errorf("%w: ratings changed since the artifact was fitted", ErrTitleOrderMismatch)
	}

	n := len(titles)
	if len(state.Rows) != n || len(state.Distances) != n {
		return nil, fmt.Errorf("%w: neighbour table covers %d rows, want %d", ErrTitleOrderMismatch, len(state.Rows), n)
	}

	idx.neighbors = make([][]rowDistance, n)
	for i := range state.Rows {
		rows, dists := state.Rows[i], state.Distances[i]
		if len(rows) != len(dists) || len(rows) == 0 || rows[0] != i {
			return nil, fmt.Errorf("%w: malformed neighbour list for row %d", ErrTitleOrderMismatch, i)
		}
		ranked := make([]rowDistance, len(rows))
		for j, row := range rows {
			if row < 0 || row >= n {
				return nil, fmt.Errorf("%w: row %d references row %d", ErrTitleOrderMismatch, i, row)
			}
			ranked[j] = rowDistance{row: row, dist: dists[j]}
		}
		idx.neighbors[i] = ranked
	}

	idx.fittedAt = time.Now()
	return idx, nil
}

// Save persists the index as the next version of ArtifactName and returns
// that version.
//
//nolint:gocritic // meta passed by value is filled in and handed to the store
func (k *KNNIndex) Save(ctx context.Context, store *storage.Store, meta storage.ModelMetadata) (int, error) {
	version := 1
	if latest, ok := store.LatestVersion(ArtifactName); ok {
		version = latest + 1
	}

	state := k.State()
	meta.Metric = state.Metric
	meta.ItemCount = len(state.Titles)
	meta.UserCount = state.NumUsers
	if meta.TrainedAt.IsZero() {
		meta.TrainedAt = k.fittedAt
	}
	if meta.TrainingDurationMS == 0 {
		meta.TrainingDurationMS = k.fitDuration.Milliseconds()
	}

	if err := store.Save(ctx, ArtifactName, version, state, meta); err != nil {
		return 0, fmt.Errorf("save similarity index: %w", err)
	}
	return version, nil
}

// LoadKNNIndex loads a persisted index for m. Version 0 loads the latest.
func LoadKNNIndex(ctx context.Context, store *storage.Store, m *recommend.RatingMatrix, version int) (*KNNIndex, *storage.ModelMetadata, error) {
	var state storage.SimilarityState
	meta, err := store.Load(ctx, ArtifactName, version, &state)
	if err != nil {
		return nil, nil, fmt.Errorf("load similarity index: %w", err)
	}

	idx, err := RestoreKNNIndex(m, state)
	if err != nil {
		return nil, nil, err
	}
	idx.fittedAt = meta.TrainedAt
	return idx, meta, nil
}
