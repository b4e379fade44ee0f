// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"time"
)

// RatingRecord is one row of the source rating dataset.
type RatingRecord struct {
	// Title is the book title; records with an empty title are skipped.
	Title string `json:"title"`

	// UserID identifies the rater.
	UserID string `json:"user_id"`

	// Rating is the user's rating of the title.
	Rating float64 `json:"rating"`

	// ImageURL is an optional cover image for the title.
	ImageURL string `json:"image_url,omitempty"`
}

// Neighbor is one result of a similarity query.
type Neighbor struct {
	Title    string  `json:"title"`
	Distance float64 `json:"distance"`
}

// Index answers nearest-neighbour queries over matrix rows.
//
// Query returns up to k rows ordered by ascending distance. The queried row
// itself is always first. Query panics with IndexLookupFault when title is not
// a row of the matrix the index was built from.
type Index interface {
	Query(title string, k int) []Neighbor
}

// IndexLookupFault is the panic value raised when an index is queried for a
// title it does not contain. Callers are expected to check membership first.
type IndexLookupFault struct {
	Title string
}

func (f IndexLookupFault) Error() string {
	return fmt.Sprintf("similarity index has no row for title %q", f.Title)
}

// CatalogEntry is a single match from the external book catalog.
type CatalogEntry struct {
	Title string `json:"title"`

	// Author is the ", "-joined author list, empty when the catalog has none.
	Author string `json:"author"`

	// Link points at the catalog's detail page for the work.
	Link string `json:"link"`

	// CoverURL is set only when the catalog carries a cover ID.
	CoverURL string `json:"cover_url,omitempty"`
}

// CatalogOutcome is the typed result of a catalog search. Err records why a
// search produced nothing; it is never surfaced to API callers except as the
// degraded flag on Result.
type CatalogOutcome struct {
	Entries []CatalogEntry
	Err     error
}

// Catalog searches an external book catalog by title.
type Catalog interface {
	Search(ctx context.Context, title string) CatalogOutcome
}

// Outcome classifies how a lookup was answered.
type Outcome int

const (
	// OutcomeEmptyInput means the title was blank; nothing was queried.
	OutcomeEmptyInput Outcome = iota
	// OutcomeLocal means the title was found in the rating matrix.
	OutcomeLocal
	// OutcomeRemote means the catalog returned matches for an unknown title.
	OutcomeRemote
	// OutcomeNoResults means the title is unknown and the catalog returned nothing.
	OutcomeNoResults
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmptyInput:
		return "empty_input"
	case OutcomeLocal:
		return "local"
	case OutcomeRemote:
		return "remote"
	case OutcomeNoResults:
		return "no_results"
	default:
		return "unknown"
	}
}

// Path returns the lookup path label used for metrics.
func (o Outcome) Path() string {
	switch o {
	case OutcomeLocal:
		return "local"
	case OutcomeRemote, OutcomeNoResults:
		return "remote"
	default:
		return "empty"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "empty_input":
		*o = OutcomeEmptyInput
	case "local":
		*o = OutcomeLocal
	case "remote":
		*o = OutcomeRemote
	case "no_results":
		*o = OutcomeNoResults
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// Item is one recommended book.
type Item struct {
	Title string `json:"title"`

	// AverageRating is the title's mean rating; nil on the remote path.
	AverageRating *float64 `json:"average_rating,omitempty"`

	// ImageURL comes from the rating dataset (local path only).
	ImageURL string `json:"image_url,omitempty"`

	// Link is the external catalog link.
	Link string `json:"link,omitempty"`

	// Author and CoverURL are populated from the catalog on the remote path.
	Author   string `json:"author,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
}

// Request is a single lookup.
type Request struct {
	// Title is matched exactly after trimming surrounding whitespace.
	Title string `json:"title"`

	// MinRating excludes local candidates whose average rating is lower.
	// It has no effect on the remote path.
	MinRating float64 `json:"min_rating"`

	// RequestID is used for log correlation only.
	RequestID string `json:"request_id,omitempty"`
}

// Result is the answer to a lookup.
type Result struct {
	// Query is the trimmed title that was looked up.
	Query string `json:"query"`

	Outcome Outcome `json:"outcome"`

	// Items is never nil so it encodes as an empty list.
	Items []Item `json:"items"`

	// Degraded reports that a catalog call failed while serving this lookup.
	Degraded bool `json:"degraded"`

	// CatalogErr is the first catalog failure observed, for logs and tests.
	CatalogErr error `json:"-"`

	// Duration is the wall time spent in Lookup.
	Duration time.Duration `json:"-"`
}

// Titles returns the item titles in result order.
func (r *Result) Titles() []string {
	titles := make([]string, len(r.Items))
	for i := range r.Items {
		titles[i] = r.Items[i].Title
	}
	return titles
}

// HistoryEntry records one lookup in a session's search history.
type HistoryEntry struct {
	Searched        string    `json:"searched"`
	Recommendations []string  `json:"recommendations"`
	Outcome         Outcome   `json:"outcome"`
	SearchedAt      time.Time `json:"searched_at"`
}
