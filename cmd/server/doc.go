// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package main is the entry point for the Folio server application.

Folio is a book recommendation lookup service. At startup it reads a flat
file of (title, user, rating) records, pivots them into a title x user
rating matrix, and loads or fits a nearest-neighbour index over the matrix
rows. Lookups are then served over HTTP from memory.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("folio")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Maintenance service (catalog cache expiry, session gauge)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Dataset: DuckDB reads the ratings file into memory, then it is closed
 4. Rating matrix and average ratings
 5. Similarity index: loaded from DATASET model dir, fitted when absent
 6. Catalog client: Open Library with rate limiter, breaker and cache
 7. History store: in-memory badger with per-entry TTL
 8. Supervisor Tree and HTTP Server

A failure in steps 1 to 5 or 7 is fatal. The catalog is never required at
startup; while it is unreachable the service keeps answering local lookups
and reports "degraded" on the health endpoint.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8501
	HTTP_HOST=0.0.0.0
	HTTP_TIMEOUT=30s

	# Dataset
	RATINGS_PATH=/data/final_rating.csv
	RATINGS_FORMAT=auto          # auto, csv, parquet
	MODEL_DIR=/data/model        # empty disables artifact loading

	# Lookup
	RECOMMEND_NEIGHBORS=10
	RECOMMEND_METRIC=euclidean   # euclidean, cosine
	RECOMMEND_DEFAULT_MIN_RATING=0.5

	# Catalog
	CATALOG_BASE_URL=https://openlibrary.org
	CATALOG_TIMEOUT=10s

	# Logging
	LOG_LEVEL=info
	LOG_FORMAT=json

A .env file in the working directory is read first and never overrides
variables that are already set.

# Graceful Shutdown

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server with a bounded shutdown timeout, then the history store is closed.

# API Documentation

Swagger UI is served at /swagger/index.html. Regenerate with:

	swag init -g cmd/server/docs.go -o docs
*/
package main
