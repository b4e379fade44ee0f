// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/folio/internal/logging"
)

// ErrMissingColumn means the dataset lacks title, user_id or rating.
var ErrMissingColumn = errors.New("dataset is missing a required column")

// warnClose closes c and logs a failure against what.
func warnClose(c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("resource", what).Msg("Close failed")
	}
}

// discardClose is for error paths, where a Close failure changes nothing.
func discardClose(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
