// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database/query"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
)

// Dataset column names.
const (
	ColumnTitle    = "title"
	ColumnUserID   = "user_id"
	ColumnRating   = "rating"
	ColumnImageURL = "image_url"
)

// RatingsQuery selects the rating records to read.
type RatingsQuery struct {
	// Path is the dataset file.
	Path string

	// Format is "auto", "csv" or "parquet".
	Format string

	// Titles restricts the result to these titles when non-empty.
	Titles []string
}

// Columns returns the dataset's columns keyed by lower-cased name, mapped to
// the name as it appears in the file.
func (db *DB) Columns(ctx context.Context, source string) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx, "DESCRIBE SELECT * FROM "+source)
	if err != nil {
		return nil, fmt.Errorf("failed to describe dataset: %w", err)
	}
	defer discardClose(rows)

	colNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read describe columns: %w", err)
	}

	columns := make(map[string]string)
	for rows.Next() {
		// DESCRIBE returns column_name first; the remaining columns vary by version.
		values := make([]interface{}, len(colNames))
		ptrs := make([]interface{}, len(colNames))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan dataset column: %w", err)
		}
		name := fmt.Sprint(values[0])
		columns[strings.ToLower(name)] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to describe dataset: %w", err)
	}
	return columns, nil
}

// LoadRatings reads rating records in file order. Non-numeric ratings are
// returned as NaN so the matrix builder can skip them.
func (db *DB) LoadRatings(ctx context.Context, q RatingsQuery) ([]recommend.RatingRecord, error) {
	source, err := query.FileSource(q.Path, q.Format)
	if err != nil {
		return nil, err
	}

	columns, err := db.Columns(ctx, source)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{ColumnTitle, ColumnUserID, ColumnRating} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	title := "CAST(" + query.QuoteIdent(columns[ColumnTitle]) + " AS VARCHAR)"
	userID := "CAST(" + query.QuoteIdent(columns[ColumnUserID]) + " AS VARCHAR)"
	rating := "TRY_CAST(" + query.QuoteIdent(columns[ColumnRating]) + " AS DOUBLE)"
	image := "CAST(NULL AS VARCHAR)"
	if name, ok := columns[ColumnImageURL]; ok {
		image = "CAST(" + query.QuoteIdent(name) + " AS VARCHAR)"
	}

	wb := query.NewWhereBuilder().
		AddClause(title + " IS NOT NULL").
		AddClause(userID + " IS NOT NULL").
		AddIn(title, q.Titles)
	where, args := wb.BuildWithPrefix()

	stmt := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s %s", title, userID, rating, image, source, where)

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer discardClose(rows)

	var records []recommend.RatingRecord
	for rows.Next() {
		var (
			rec      recommend.RatingRecord
			value    sql.NullFloat64
			imageURL sql.NullString
		)
		if err := rows.Scan(&rec.Title, &rec.UserID, &value, &imageURL); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		rec.Rating = math.NaN()
		if value.Valid {
			rec.Rating = value.Float64
		}
		rec.ImageURL = imageURL.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	return records, nil
}

// ReadRatings opens a temporary DuckDB instance, reads cfg.RatingsPath and
// closes the instance again.
func ReadRatings(ctx context.Context, cfg *config.DatasetConfig) ([]recommend.RatingRecord, error) {
	start := time.Now()

	db, err := New(cfg)
	if err != nil {
		return nil, err
	}
	defer warnClose(db, "duckdb")

	records, err := db.LoadRatings(ctx, RatingsQuery{Path: cfg.RatingsPath, Format: cfg.Format})
	if err != nil {
		return nil, fmt.Errorf("load ratings from %s: %w", cfg.RatingsPath, err)
	}

	logging.Info().
		Str("path", cfg.RatingsPath).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Rating records loaded")

	return records, nil
}
