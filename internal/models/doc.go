// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package models defines the HTTP API data structures for Folio.

Every endpoint answers with an APIResponse envelope. Successful responses carry
one of the payload types below in Data; failures carry an APIError with a
machine-readable code.

Payloads:

  - RecommendationData: result of a title lookup
  - TitlesData: local title listing and autocomplete
  - HistoryData: the caller's session search history, newest first
  - HealthData: dataset size, index and catalog state

Domain types (recommend.Item, recommend.HistoryEntry, recommend.Outcome) are
embedded directly so the wire format follows their JSON tags.
*/
package models
