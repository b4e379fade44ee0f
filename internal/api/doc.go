// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api provides the HTTP REST API layer for Folio.

Endpoints:

  - GET /api/v1/recommendations?title=&min_rating=&theme=
    Similar titles for a book. Local titles are answered from the
    similarity index, unknown titles from the Open Library catalog.
  - GET /api/v1/titles?prefix=&limit=
    Known titles, optionally filtered by a case-insensitive prefix.
  - GET /api/v1/history, DELETE /api/v1/history
    The caller's session search history, newest first, and its removal.
  - GET /api/v1/health, /api/v1/health/live, /api/v1/health/ready
  - GET /metrics (Prometheus), GET /swagger/* (API docs)

Every JSON response uses the models.APIResponse envelope. Sessions are
anonymous: the session middleware issues a folio_session cookie (or honours
an X-Session-ID header) and the history store keys entries by that ID.

Usage Example:

	handler := api.NewHandler(engine, store, catalogService, cfg)
	router := api.NewRouter(handler, cfg)
	http.ListenAndServe(":8501", router.Routes())

Thread Safety:

Handlers are safe for concurrent use. The engine and title trie are
read-only after construction; the history store serializes through badger
transactions.
*/
package api
