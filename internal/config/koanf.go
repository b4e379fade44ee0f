// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or
// points at a missing file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/folio/config.yaml",
	"/etc/folio/config.yml",
}

const (
	ConfigPathEnvVar = "CONFIG_PATH"
	DotEnvPathEnvVar = "DOTENV_PATH"
)

// defaultConfig is the bottom configuration layer.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8501,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Dataset: DatasetConfig{
			RatingsPath: "/data/final_rating.csv",
			Format:      "auto",
			ModelDir:    "/data/model",
			MaxMemory:   "512MB",
			Threads:     0, // 0 = DuckDB default
		},
		Recommend: RecommendConfig{
			Neighbors:        10,
			Metric:           "euclidean",
			DefaultMinRating: 0.5,
			MaxMinRating:     10,
			EnrichLinks:      true,
			EnrichWorkers:    4,
		},
		Catalog: CatalogConfig{
			BaseURL:           "https://openlibrary.org",
			CoverBaseURL:      "http://covers.openlibrary.org",
			Timeout:           10 * time.Second,
			MaxResults:        5,
			UserAgent:         "Folio/1.0 (+https://github.com/tomtom215/folio)",
			RequestsPerSecond: 5,
			Burst:             5,
			CacheSize:         1024,
			CacheTTL:          time.Hour,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		History: HistoryConfig{
			SessionTTL:   2 * time.Hour,
			MaxEntries:   0,
			CookieName:   "folio_session",
			CookieSecure: false,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
	}
}

// LoadWithKoanf merges, lowest precedence first: built-in defaults, the
// optional YAML file, then mapped environment variables. A .env file seeds
// the environment beforehand without overriding variables already set.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitListValues(k, listKeys...); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first existing candidate, or "".
func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, DefaultConfigPaths...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// listKeys hold []string values; from the environment they arrive as one
// comma-separated string.
var listKeys = []string{"security.cors_origins"}

func splitListValues(k *koanf.Koanf, keys ...string) error {
	for _, key := range keys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		if err := k.Set(key, items); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Dataset
	"ratings_path":      "dataset.ratings_path",
	"ratings_format":    "dataset.format",
	"model_dir":         "dataset.model_dir",
	"duckdb_max_memory": "dataset.max_memory",
	"duckdb_threads":    "dataset.threads",

	// Recommendation lookups
	"recommend_neighbors":          "recommend.neighbors",
	"recommend_metric":             "recommend.metric",
	"recommend_default_min_rating": "recommend.default_min_rating",
	"recommend_max_min_rating":     "recommend.max_min_rating",
	"recommend_enrich_links":       "recommend.enrich_links",
	"recommend_enrich_workers":     "recommend.enrich_workers",

	// Open Library catalog
	"catalog_base_url":              "catalog.base_url",
	"catalog_cover_base_url":        "catalog.cover_base_url",
	"catalog_timeout":               "catalog.timeout",
	"catalog_max_results":           "catalog.max_results",
	"catalog_user_agent":            "catalog.user_agent",
	"catalog_rate_limit":            "catalog.requests_per_second",
	"catalog_rate_burst":            "catalog.burst",
	"catalog_cache_size":            "catalog.cache_size",
	"catalog_cache_ttl":             "catalog.cache_ttl",
	"catalog_breaker_max_requests":  "catalog.breaker.max_requests",
	"catalog_breaker_interval":      "catalog.breaker.interval",
	"catalog_breaker_timeout":       "catalog.breaker.timeout",
	"catalog_breaker_min_requests":  "catalog.breaker.min_requests",
	"catalog_breaker_failure_ratio": "catalog.breaker.failure_ratio",

	// Session history
	"history_session_ttl":   "history.session_ttl",
	"history_max_entries":   "history.max_entries",
	"history_cookie_name":   "history.cookie_name",
	"history_cookie_secure": "history.cookie_secure",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

// envTransformFunc maps an environment variable name (any case) onto its
// koanf path, e.g. CATALOG_BREAKER_TIMEOUT to catalog.breaker.timeout. The
// empty result for unmapped names makes koanf skip them.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
