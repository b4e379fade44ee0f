// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	History   HistoryConfig   `koanf:"history"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatasetConfig locates the pre-built artifacts loaded at startup.
type DatasetConfig struct {
	// RatingsPath is the flat rating record file (CSV or Parquet).
	RatingsPath string `koanf:"ratings_path"`

	// Format is "auto", "csv" or "parquet". Auto picks by file extension.
	Format string `koanf:"format"`

	// ModelDir holds persisted similarity index artifacts. When empty the
	// index is always fitted from the rating matrix at startup.
	ModelDir string `koanf:"model_dir"`

	// MaxMemory and Threads tune the DuckDB instance used to read ratings.
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// RecommendConfig holds lookup settings.
type RecommendConfig struct {
	Neighbors        int     `koanf:"neighbors"`
	Metric           string  `koanf:"metric"`
	DefaultMinRating float64 `koanf:"default_min_rating"`
	MaxMinRating     float64 `koanf:"max_min_rating"`
	EnrichLinks      bool    `koanf:"enrich_links"`
	EnrichWorkers    int     `koanf:"enrich_workers"`
}

// CatalogConfig holds Open Library client settings.
type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url"`
	CoverBaseURL      string        `koanf:"cover_base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxResults        int           `koanf:"max_results"`
	UserAgent         string        `koanf:"user_agent"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	CacheSize         int           `koanf:"cache_size"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	Breaker           BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker thresholds for the catalog client.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// HistoryConfig holds per-session search history settings.
type HistoryConfig struct {
	SessionTTL   time.Duration `koanf:"session_ttl"`
	MaxEntries   int           `koanf:"max_entries"` // 0 keeps every entry until the session ends
	CookieName   string        `koanf:"cookie_name"`
	CookieSecure bool          `koanf:"cookie_secure"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// Load reads configuration from defaults, an optional config file and the
// environment. See LoadWithKoanf for the layering rules.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// ShouldWarnAboutCORS reports whether wildcard CORS is configured outside
// development.
func (c *Config) ShouldWarnAboutCORS() bool {
	if c.IsDevelopment() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
