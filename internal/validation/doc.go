// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is configured once with Folio's custom
// rules and a tag name function that reports fields by their query or JSON
// parameter name. Failures translate to user-facing messages and convert to
// the API error envelope through ToAPIError.
//
// # Request types
//
// LookupRequest and TitlesRequest describe the query parameters accepted by
// the recommendation and title listing endpoints:
//
//	req := validation.LookupRequest{Title: title, MinRating: minRating}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom tags
//
//   - finite: float fields must not be NaN or infinite
package validation
