// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every collector is exported as folio_<name>.
const namespace = "folio"

func counter(name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

func counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func gauge(name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

func gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets})
}

func histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

// HTTP surface.
var (
	APIRequestsTotal = counterVec("api_requests_total",
		"API requests by method, route pattern and status code", "method", "endpoint", "status_code")
	APIRequestDuration = histogramVec("api_request_duration_seconds",
		"API request latency", []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, "method", "endpoint")
	APIActiveRequests = gauge("api_active_requests", "API requests currently in flight")
)

// Lookups. path is empty, local or remote; outcome is the finer result.
var (
	LookupsTotal   = counterVec("lookups_total", "Recommendation lookups by path and outcome", "path", "outcome")
	LookupDuration = histogramVec("lookup_duration_seconds",
		"Recommendation lookup latency", []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, "path")
	// At most nine local or five remote items are ever returned.
	LookupResultSize = histogram("lookup_result_items", "Items returned per lookup", []float64{0, 1, 2, 3, 5, 7, 9})
)

// Open Library client. result is success, unavailable, status, decode or
// rejected (breaker open).
var (
	CatalogRequests        = counterVec("catalog_requests_total", "Open Library searches by result", "result")
	CatalogRequestDuration = histogram("catalog_request_duration_seconds",
		"Open Library search latency", []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10})
	CatalogCacheHits   = counter("catalog_cache_hits_total", "Link enrichment searches answered from cache")
	CatalogCacheMisses = counter("catalog_cache_misses_total", "Link enrichment searches that went to Open Library")
)

// Circuit breaker, labelled by breaker name.
var (
	CircuitBreakerState = gaugeVec("circuit_breaker_state",
		"Breaker state (0=closed, 1=half-open, 2=open)", "name")
	CircuitBreakerRequests = counterVec("circuit_breaker_requests_total",
		"Calls through the breaker by result (success, failure, rejected)", "name", "result")
	CircuitBreakerConsecutiveFailures = gaugeVec("circuit_breaker_consecutive_failures",
		"Consecutive failures seen by the breaker", "name")
	CircuitBreakerTransitions = counterVec("circuit_breaker_state_transitions_total",
		"Breaker state changes", "name", "from_state", "to_state")
)

// Loaded dataset, set once at startup.
var (
	DatasetTitles  = gauge("dataset_titles", "Distinct titles in the rating matrix")
	DatasetUsers   = gauge("dataset_users", "Distinct users in the rating matrix")
	DatasetRecords = gauge("dataset_records", "Rating records read from the dataset file")
)

// Session history and its upkeep.
var (
	HistoryAppends  = counter("history_appends_total", "Search history entries recorded")
	HistoryClears   = counter("history_clears_total", "Sessions ended by clearing their history")
	HistorySessions = gauge("history_sessions", "Sessions with at least one unexpired history entry")
	MaintenanceRuns = counterVec("maintenance_runs_total",
		"Background maintenance runs by task and result (success, error)", "task", "result")
)

func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments the in-flight gauge when inc is true and
// decrements it otherwise.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

func RecordLookup(path, outcome string, items int, duration time.Duration) {
	LookupsTotal.WithLabelValues(path, outcome).Inc()
	LookupDuration.WithLabelValues(path).Observe(duration.Seconds())
	LookupResultSize.Observe(float64(items))
}

// RecordCatalogRequest counts one search. Rejected calls never reached the
// network, so their latency is not observed.
func RecordCatalogRequest(result string, duration time.Duration) {
	CatalogRequests.WithLabelValues(result).Inc()
	if result != "rejected" {
		CatalogRequestDuration.Observe(duration.Seconds())
	}
}

func RecordCatalogCache(hit bool) {
	if hit {
		CatalogCacheHits.Inc()
		return
	}
	CatalogCacheMisses.Inc()
}

// SetDatasetSize publishes the dimensions of the loaded rating matrix.
func SetDatasetSize(records, titles, users int) {
	DatasetRecords.Set(float64(records))
	DatasetTitles.Set(float64(titles))
	DatasetUsers.Set(float64(users))
}
