// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware components for Folio.

Key Components:

  - Request ID: UUID-based request tracking for log correlation
  - Session: anonymous session identification for per-session search history
  - Prometheus Metrics: HTTP request/response instrumentation keyed by route pattern

Each middleware has the http.HandlerFunc signature used throughout the API
package; the router adapts them to chi with a small wrapper:

	r.Use(adapt(middleware.RequestID))
	r.Use(adapt(middleware.PrometheusMetrics))
	r.Use(middleware.NewSession(cfg).Handler)

Sessions:

A session is identified by the folio_session cookie (name configurable) or the
X-Session-ID header. Values that are not UUIDs are ignored and a fresh session
is issued, so history keys always have a fixed shape.
*/
package middleware
