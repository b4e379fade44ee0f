// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.RatingsPath == "" {
		return fmt.Errorf("RATINGS_PATH is required")
	}
	switch strings.ToLower(c.Dataset.Format) {
	case "", "auto", "csv", "parquet":
	default:
		return fmt.Errorf("RATINGS_FORMAT must be one of auto, csv, parquet, got %q", c.Dataset.Format)
	}
	if c.Dataset.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Dataset.Threads)
	}
	return nil
}

// validateRecommend checks lookup settings. At least two neighbours are
// needed so that one remains after the query title itself is dropped.
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.Neighbors < 2 {
		return fmt.Errorf("RECOMMEND_NEIGHBORS must be at least 2, got %d", r.Neighbors)
	}
	switch r.Metric {
	case "euclidean", "cosine":
	default:
		return fmt.Errorf("RECOMMEND_METRIC must be euclidean or cosine, got %q", r.Metric)
	}
	if r.MaxMinRating <= 0 {
		return fmt.Errorf("RECOMMEND_MAX_MIN_RATING must be positive, got %v", r.MaxMinRating)
	}
	if r.DefaultMinRating < 0 || r.DefaultMinRating > r.MaxMinRating {
		return fmt.Errorf("RECOMMEND_DEFAULT_MIN_RATING must be between 0 and %v, got %v", r.MaxMinRating, r.DefaultMinRating)
	}
	if r.EnrichWorkers < 1 {
		return fmt.Errorf("RECOMMEND_ENRICH_WORKERS must be at least 1, got %d", r.EnrichWorkers)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	cat := c.Catalog
	if err := validateHTTPURL(cat.BaseURL, "CATALOG_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(cat.CoverBaseURL, "CATALOG_COVER_BASE_URL"); err != nil {
		return err
	}
	if cat.Timeout <= 0 || cat.Timeout > time.Minute {
		return fmt.Errorf("CATALOG_TIMEOUT must be between 0 and 1m, got %v", cat.Timeout)
	}
	if cat.MaxResults < 1 || cat.MaxResults > 100 {
		return fmt.Errorf("CATALOG_MAX_RESULTS must be between 1 and 100, got %d", cat.MaxResults)
	}
	if cat.RequestsPerSecond < 0 {
		return fmt.Errorf("CATALOG_RATE_LIMIT must be non-negative, got %v", cat.RequestsPerSecond)
	}
	if cat.RequestsPerSecond > 0 && cat.Burst < 1 {
		return fmt.Errorf("CATALOG_RATE_BURST must be at least 1 when rate limiting is enabled, got %d", cat.Burst)
	}
	if cat.Breaker.FailureRatio <= 0 || cat.Breaker.FailureRatio > 1 {
		return fmt.Errorf("CATALOG_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", cat.Breaker.FailureRatio)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.SessionTTL <= 0 {
		return fmt.Errorf("HISTORY_SESSION_TTL must be positive, got %v", c.History.SessionTTL)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("HISTORY_MAX_ENTRIES must be 0 (unbounded) or positive, got %d", c.History.MaxEntries)
	}
	if c.History.CookieName == "" {
		return fmt.Errorf("HISTORY_COOKIE_NAME is required")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL is invalid: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that rawURL is an http(s) base URL without a path
// or query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
