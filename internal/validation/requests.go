// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package validation

// Parameter bounds shared with the HTTP handlers and the CLI.
const (
	MaxTitleLength  = 512
	MaxPrefixLength = 256
	MaxTitlesLimit  = 1000
)

// LookupRequest holds the parameters of a recommendation lookup.
// An empty title is valid and yields an empty result. The upper bound of
// MinRating is configuration, so handlers check it after validation.
type LookupRequest struct {
	Title     string  `query:"title" validate:"max=512"`
	MinRating float64 `query:"min_rating" validate:"finite,gte=0"`
	Theme     string  `query:"theme" validate:"omitempty,oneof=light dark"`
}

// TitlesRequest holds the parameters of a title listing.
type TitlesRequest struct {
	Prefix string `query:"prefix" validate:"max=256"`
	Limit  int    `query:"limit" validate:"min=0,max=1000"`
}
