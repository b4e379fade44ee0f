// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"runtime"
	"strconv"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/folio/internal/config"
)

const (
	defaultMaxMemory = "512MB"
	pingTimeout      = 10 * time.Second
)

// DB is an in-memory DuckDB instance. Folio uses it only to parse rating
// files; nothing is written back.
type DB struct {
	conn *sql.DB
	cfg  *config.DatasetConfig
}

// dsn builds the in-memory connection string from the dataset limits.
func dsn(cfg *config.DatasetConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	mem := cfg.MaxMemory
	if mem == "" {
		mem = defaultMaxMemory
	}
	params := url.Values{}
	params.Set("threads", strconv.Itoa(threads))
	params.Set("max_memory", mem)
	return ":memory:?" + params.Encode()
}

// New opens and pings an instance sized by cfg.Threads and cfg.MaxMemory.
func New(cfg *config.DatasetConfig) (*DB, error) {
	conn, err := sql.Open("duckdb", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Reads are short-lived scans; a small idle pool is enough.
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{conn: conn, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		discardClose(conn)
		return nil, err
	}
	return db, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Conn exposes the pool for callers that need raw SQL.
func (db *DB) Conn() *sql.DB { return db.conn }

func (db *DB) Close() error { return db.conn.Close() }
