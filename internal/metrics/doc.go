// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package metrics provides Prometheus instrumentation for Folio.

All collectors are registered on the default registry through promauto,
prefixed with folio_ and exposed by the API router at /metrics.

# Metric Families

  - api_*: request count, latency and in-flight gauge per route
  - lookups_*: lookups by path (local, remote, empty) and outcome
  - catalog_*: Open Library request results, latency and cache efficiency
  - circuit_breaker_*: breaker state, transitions and gated requests
  - dataset_*: size of the loaded rating matrix
  - history_*, maintenance_*: session history and its background upkeep

# Example Queries

	# Share of lookups answered by the remote catalog
	sum(rate(folio_lookups_total{path="remote"}[5m])) / sum(rate(folio_lookups_total[5m]))

	# Catalog degradation
	rate(folio_catalog_requests_total{result!="success"}[5m])
*/
package metrics
