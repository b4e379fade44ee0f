// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package logging is Folio's single log stream, built on zerolog.
//
// Init configures one global logger; the package-level helpers (Info, Warn,
// Error, Debug, Fatal) write to it. Components that want their own fields
// derive a child with With or WithComponent at construction time:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Service: "folio-server"})
//	logger := logging.WithComponent("catalog")
//	logger.Info().Str("title", title).Msg("catalog search")
//
// Request-scoped code logs through Ctx, which adds the correlation, request
// and session IDs placed in the context by the HTTP middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("history unavailable")
//
// SlogHandler bridges slog-only libraries into the same stream; the
// supervisor tree receives NewSlogLogger.
//
// LOG_LEVEL, LOG_FORMAT and LOG_CALLER are read by the config package and
// passed to Init. An event chain writes nothing until .Msg or .Send is
// called.
package logging
