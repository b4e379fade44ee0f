// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import "errors"

// Common API errors
var (
	// ErrNoSession indicates the session middleware did not run for a request
	ErrNoSession = errors.New("no session in request context")

	// ErrHistoryDisabled indicates the handler was built without a history store
	ErrHistoryDisabled = errors.New("search history is not configured")
)
