// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import (
	"time"

	"github.com/tomtom215/folio/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes used in APIError.Code.
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeMethod       = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimit    = "RATE_LIMIT_EXCEEDED"
	ErrCodeHistory      = "HISTORY_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeSessionState = "SESSION_ERROR"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"query": "Dune", "outcome": "local", "items": [...]},
//	  "metadata": {
//	    "timestamp": "2026-01-02T12:00:00Z",
//	    "query_time_ms": 4,
//	    "theme": "dark"
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "min_rating must be between 0 and 10",
//	    "details": {"field": "min_rating"}
//	  },
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
//
// Theme echoes the requested presentation theme ("light" or "dark"). It has
// no effect on results and exists so clients can round-trip the preference.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Theme       string    `json:"theme,omitempty"`
}

// APIError represents an error response with structured error details.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationData is the payload of GET /api/v1/recommendations.
type RecommendationData struct {
	Query     string            `json:"query"`
	Outcome   recommend.Outcome `json:"outcome"`
	MinRating float64           `json:"min_rating"`
	Degraded  bool              `json:"degraded"`
	Items     []recommend.Item  `json:"items"`
}

// TitlesData is the payload of GET /api/v1/titles.
type TitlesData struct {
	Prefix string   `json:"prefix,omitempty"`
	Total  int      `json:"total"`
	Titles []string `json:"titles"`
}

// HistoryData is the payload of GET /api/v1/history. Entries are newest first.
type HistoryData struct {
	SessionID string                   `json:"session_id"`
	Entries   []recommend.HistoryEntry `json:"entries"`
}

// HealthData is the payload of GET /api/v1/health.
type HealthData struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	Titles         int     `json:"titles"`
	Users          int     `json:"users"`
	Records        int     `json:"records"`
	IndexMetric    string  `json:"index_metric"`
	IndexK         int     `json:"index_k"`
	CatalogBreaker string  `json:"catalog_breaker"`
	Sessions       int     `json:"sessions"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}
