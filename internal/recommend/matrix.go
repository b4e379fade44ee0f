// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"sort"
)

// ErrNoRatings is returned when no usable rating record remains after skipping
// records with an empty title or a non-finite rating.
var ErrNoRatings = errors.New("no usable rating records")

// RatingMatrix is a dense title x user matrix. Rows are titles in byte order,
// columns are user IDs in byte order, and a missing rating is stored as 0.
//
// The row order is the canonical title order: similarity indexes are built
// from Rows and report neighbours by row, so the two always agree.
// A RatingMatrix is immutable after BuildMatrix returns.
type RatingMatrix struct {
	titles   []string
	users    []string
	rows     [][]float64
	rowIndex map[string]int
	images   map[string]string
	records  int
}

// AverageRatings maps a title to the mean of all its usable ratings.
type AverageRatings map[string]float64

// Get returns the average rating for title, or 0 when the title has none.
func (a AverageRatings) Get(title string) float64 {
	return a[title]
}

// Has reports whether title has an average rating.
func (a AverageRatings) Has(title string) bool {
	_, ok := a[title]
	return ok
}

type cellKey struct {
	title string
	user  string
}

type runningMean struct {
	sum   float64
	count int
}

func (m *runningMean) add(v float64) {
	m.sum += v
	m.count++
}

func (m runningMean) mean() float64 {
	return m.sum / float64(m.count)
}

// BuildMatrix builds the rating matrix and the per-title average ratings.
//
// Duplicate (title, user) pairs collapse to their mean. Averages are taken over
// every usable record of a title, duplicates included. The first non-empty
// image URL seen for a title is kept.
//
//nolint:gocritic // rangeValCopy: RatingRecord is small
func BuildMatrix(records []RatingRecord) (*RatingMatrix, AverageRatings, error) {
	cells := make(map[cellKey]*runningMean)
	totals := make(map[string]*runningMean)
	images := make(map[string]string)
	userSet := make(map[string]struct{})
	used := 0

	for _, rec := range records {
		if rec.Title == "" {
			continue
		}
		if math.IsNaN(rec.Rating) || math.IsInf(rec.Rating, 0) {
			continue
		}
		used++

		key := cellKey{title: rec.Title, user: rec.UserID}
		cell := cells[key]
		if cell == nil {
			cell = &runningMean{}
			cells[key] = cell
		}
		cell.add(rec.Rating)

		total := totals[rec.Title]
		if total == nil {
			total = &runningMean{}
			totals[rec.Title] = total
		}
		total.add(rec.Rating)

		userSet[rec.UserID] = struct{}{}

		if rec.ImageURL != "" {
			if _, seen := images[rec.Title]; !seen {
				images[rec.Title] = rec.ImageURL
			}
		}
	}

	if used == 0 {
		return nil, nil, ErrNoRatings
	}

	titles := make([]string, 0, len(totals))
	for title := range totals {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	users := make([]string, 0, len(userSet))
	for user := range userSet {
		users = append(users, user)
	}
	sort.Strings(users)

	rowIndex := make(map[string]int, len(titles))
	for i, title := range titles {
		rowIndex[title] = i
	}
	colIndex := make(map[string]int, len(users))
	for j, user := range users {
		colIndex[user] = j
	}

	rows := make([][]float64, len(titles))
	for i := range rows {
		rows[i] = make([]float64, len(users))
	}
	for key, cell := range cells {
		rows[rowIndex[key.title]][colIndex[key.user]] = cell.mean()
	}

	averages := make(AverageRatings, len(totals))
	for title, total := range totals {
		averages[title] = total.mean()
	}

	m := &RatingMatrix{
		titles:   titles,
		users:    users,
		rows:     rows,
		rowIndex: rowIndex,
		images:   images,
		records:  used,
	}
	return m, averages, nil
}

// Len returns the number of rows (distinct titles).
func (m *RatingMatrix) Len() int {
	return len(m.titles)
}

// NumUsers returns the number of columns (distinct users).
func (m *RatingMatrix) NumUsers() int {
	return len(m.users)
}

// NumRecords returns how many records contributed to the matrix.
func (m *RatingMatrix) NumRecords() int {
	return m.records
}

// Titles returns the row keys in row order. The slice must not be modified.
func (m *RatingMatrix) Titles() []string {
	return m.titles
}

// Users returns the column keys in column order. The slice must not be modified.
func (m *RatingMatrix) Users() []string {
	return m.users
}

// Row returns the rating vector of row i. The slice must not be modified.
func (m *RatingMatrix) Row(i int) []float64 {
	return m.rows[i]
}

// RowIndex returns the row of title and whether it exists. Matching is exact.
func (m *RatingMatrix) RowIndex(title string) (int, bool) {
	i, ok := m.rowIndex[title]
	return i, ok
}

// Contains reports whether title is a row key.
func (m *RatingMatrix) Contains(title string) bool {
	_, ok := m.rowIndex[title]
	return ok
}

// Fingerprint returns a hex sha256 digest over the titles, users and every
// cell value. Two matrices with the same fingerprint yield the same index.
func (m *RatingMatrix) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	writeKeys := func(keys []string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(keys)))
		h.Write(buf[:])
		for _, k := range keys {
			binary.BigEndian.PutUint64(buf[:], uint64(len(k)))
			h.Write(buf[:])
			h.Write([]byte(k))
		}
	}
	writeKeys(m.titles)
	writeKeys(m.users)
	for _, row := range m.rows {
		for _, v := range row {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ImageURL returns the first image URL recorded for title, or "".
func (m *RatingMatrix) ImageURL(title string) string {
	return m.images[title]
}

// Rating returns the matrix cell for (title, user), 0 when either is unknown.
func (m *RatingMatrix) Rating(title, user string) float64 {
	i, ok := m.rowIndex[title]
	if !ok {
		return 0
	}
	j := sort.SearchStrings(m.users, user)
	if j >= len(m.users) || m.users[j] != user {
		return 0
	}
	return m.rows[i][j]
}
