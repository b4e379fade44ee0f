// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/folio/internal/history"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

// sessionHistory returns the history of the caller's session.
func (h *Handler) sessionHistory(r *http.Request) (*history.Session, error) {
	if h.history == nil {
		return nil, ErrHistoryDisabled
	}
	id := middleware.GetSessionID(r.Context())
	if id == "" {
		return nil, ErrNoSession
	}
	return h.history.ForSession(id)
}

// respondSessionError maps session lookup failures to responses.
func respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrHistoryDisabled):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Search history is not enabled", nil)
	case errors.Is(err, history.ErrInvalidSession):
		respondError(w, http.StatusBadRequest, models.ErrCodeSessionState, "Invalid session identifier", nil)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeSessionState, "Session is unavailable", err)
	}
}

// History handles GET /api/v1/history
//
// @Summary Get session search history
// @Description Returns the lookups made in the caller's session, newest first.
// @Tags History
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HistoryData} "Session history"
// @Failure 503 {object} models.APIResponse "History disabled"
// @Router /history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionHistory(r)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	entries, err := session.Entries(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeHistory, "Failed to read search history", err)
		return
	}

	respondSuccess(w, r, models.HistoryData{
		SessionID: session.ID(),
		Entries:   newestFirst(entries),
	}, models.Metadata{})
}

// ClearHistory handles DELETE /api/v1/history
//
// @Summary End the session history
// @Description Removes every history entry of the caller's session.
// @Tags History
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HistoryData} "History cleared"
// @Failure 503 {object} models.APIResponse "History disabled"
// @Router /history [delete]
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionHistory(r)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	if err := session.Clear(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeHistory, "Failed to clear search history", err)
		return
	}

	respondSuccess(w, r, models.HistoryData{
		SessionID: session.ID(),
		Entries:   []recommend.HistoryEntry{},
	}, models.Metadata{})
}

// newestFirst returns entries in reverse order without modifying the input.
func newestFirst(entries []recommend.HistoryEntry) []recommend.HistoryEntry {
	out := make([]recommend.HistoryEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
