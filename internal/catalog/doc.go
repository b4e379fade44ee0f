// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package catalog provides the external book catalog used when a title is not
part of the local rating dataset, and for link enrichment of local results.

The catalog is Open Library's search API:

	GET {base}/search.json?title=<title>

Only the first MaxResults documents are used. Each becomes a
recommend.CatalogEntry with the ", "-joined author list, a link to the work
page ({base}{key}) and, when the document has a non-zero cover_i, a medium
cover image ({cover_base}/b/id/{cover_i}-M.jpg).

# Layers

	Cached -> Breaker -> Client -> Open Library

  - Client performs one HTTP request per search, no retries, rate limited with
    golang.org/x/time/rate so bursts of link enrichment stay polite.
  - Breaker wraps the client in a sony/gobreaker circuit breaker and publishes
    breaker metrics.
  - Cached keeps successful outcomes in an LRU with TTL.

# Failure Policy

Search never returns a Go error. Failures are reported in
CatalogOutcome.Err and wrap one of ErrCatalogUnavailable, ErrCatalogStatus,
ErrCatalogDecode or ErrCatalogOpen, so callers can treat every failure as
"no results" while tests and logs can still tell them apart.
*/
package catalog
