// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package cache provides the in-memory data structures Folio keeps beside its
immutable dataset.

# Overview

  - LRU: a generic, thread-safe least-recently-used cache with a per-entry TTL.
    The catalog package uses it to remember Open Library outcomes per title so
    that link enrichment does not refetch the same search within the TTL.
  - TitleTrie: a read-mostly prefix tree over the matrix titles backing the
    title autocomplete endpoint. Matching is case-insensitive; results keep the
    original casing and are returned in byte order, the same order as matrix rows.

# Expiration

Entries expire lazily on Get. CleanupExpired walks from the least recently used
end and can be called periodically when memory matters more than latency.

# Usage Example

	links := cache.NewLRU[catalog.Outcome](1024, time.Hour)
	links.Add("Dune", outcome)
	if o, ok := links.Get("Dune"); ok {
	    // served from cache
	}
*/
package cache
