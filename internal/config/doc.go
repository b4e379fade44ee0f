// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package config provides centralized configuration management for Folio.

Configuration is loaded with Koanf v2 in layers, highest priority last:

  - Built-in defaults (defaultConfig)
  - Optional YAML file (CONFIG_PATH, or config.yaml in the working directory)
  - Environment variables, optionally seeded from a local .env file

# Sections

  - server:    HTTP bind address, port, timeouts, environment
  - logging:   zerolog level, format and caller settings
  - dataset:   rating record artifact and similarity model directory
  - recommend: neighbour count, distance metric, rating threshold defaults
  - catalog:   Open Library endpoint, timeout, politeness limiter, cache, breaker
  - history:   per-session history TTL, size cap, session cookie
  - security:  CORS origins and inbound rate limiting

# Environment Variables

Only mapped names are read (see envTransformFunc); anything else in the
environment is ignored. Examples:

	HTTP_PORT=8501
	RATINGS_PATH=/data/final_rating.csv
	RECOMMEND_METRIC=cosine
	CATALOG_TIMEOUT=8s
	HISTORY_SESSION_TTL=2h
	CORS_ORIGINS=https://books.example.com,https://admin.example.com
*/
package config
