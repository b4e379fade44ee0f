// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package history stores per-session search history in an in-memory BadgerDB.
//
// Every lookup of a session appends one entry under
//
//	history:<session-id>:<sequence>
//
// so a prefix scan returns the session's entries in the order they were
// recorded. Entries carry a TTL that is refreshed on each append, which makes
// an idle session expire as a whole. Entries are kept until the session ends
// unless MaxEntries is positive, in which case the oldest are dropped first.
//
// Nothing is written to disk: the database runs in BadgerDB's in-memory mode
// and is discarded when the process exits.
package history
