// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package main provides the Folio HTTP server
//
// Folio API answers "which books are similar to this one?" from a
// precomputed title x user rating matrix, falling back to Open Library
// for titles the local dataset does not know.
//
// @title Folio API
// @version 1.0
// @description Book recommendation lookup service backed by a nearest-neighbour index over reader ratings.
// @description
// @description ## Lookup paths
// @description
// @description - **Local**: the title is a row of the rating matrix. Up to nine similar titles are returned, filtered by `min_rating` against each title's average rating.
// @description - **Remote**: the title is unknown locally. Up to five Open Library search results are returned; `min_rating` is not applied.
// @description
// @description ## Sessions
// @description
// @description Every non-empty lookup is appended to the caller's session history. Sessions are anonymous and identified by the `folio_session` cookie or the `X-Session-ID` header.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/folio/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8501
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health and readiness probes
//
// @tag.name Recommendations
// @tag.description Title lookups and title listing
//
// @tag.name History
// @tag.description Per-session search history
package main
