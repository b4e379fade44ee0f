// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/validation"
)

// Recommendations handles GET /api/v1/recommendations
//
// @Summary Recommend similar books
// @Description Returns up to nine titles similar to the given book. Known titles are answered from the local similarity index and filtered by min_rating; unknown titles fall back to an Open Library search where min_rating does not apply.
// @Tags Recommendations
// @Produce json
// @Param title query string false "Book title (exact match after trimming)"
// @Param min_rating query number false "Minimum average rating for local results, 0 up to RECOMMEND_MAX_MIN_RATING" default(0.5)
// @Param theme query string false "Presentation theme echoed in metadata" Enums(light, dark)
// @Success 200 {object} models.APIResponse{data=models.RecommendationData} "Lookup result"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Engine not ready"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Recommendation engine is not ready", nil)
		return
	}

	minRating, apiErr := getFloatParam(r, "min_rating", h.config.Recommend.DefaultMinRating)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	q := r.URL.Query()
	req := validation.LookupRequest{
		Title:     q.Get("title"),
		MinRating: minRating,
		Theme:     q.Get("theme"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if limit := h.config.Recommend.MaxMinRating; limit > 0 && req.MinRating > limit {
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: fmt.Sprintf("min_rating must be less than or equal to %s", strconv.FormatFloat(limit, 'f', -1, 64)),
			Details: map[string]interface{}{"field": "min_rating", "value": req.MinRating},
		}, nil)
		return
	}

	var hist recommend.History
	session, err := h.sessionHistory(r)
	switch {
	case err == nil:
		hist = session
	case errors.Is(err, ErrHistoryDisabled):
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeSessionState, "Session is unavailable", err)
		return
	}

	ctx := r.Context()
	if timeout := h.config.Server.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	lookupReq := recommend.Request{
		Title:     req.Title,
		MinRating: req.MinRating,
		RequestID: logging.RequestIDFromContext(ctx),
	}

	res := h.engine.Lookup(ctx, lookupReq, hist)

	metrics.RecordLookup(res.Outcome.Path(), res.Outcome.String(), len(res.Items), res.Duration)

	respondSuccess(w, r, models.RecommendationData{
		Query:     res.Query,
		Outcome:   res.Outcome,
		MinRating: req.MinRating,
		Degraded:  res.Degraded,
		Items:     res.Items,
	}, models.Metadata{
		QueryTimeMS: res.Duration.Milliseconds(),
		Theme:       req.Theme,
	})
}

// Titles handles GET /api/v1/titles
//
// @Summary List known titles
// @Description Lists titles present in the rating matrix in byte order. A prefix filters case-insensitively.
// @Tags Recommendations
// @Produce json
// @Param prefix query string false "Case-insensitive title prefix"
// @Param limit query int false "Maximum titles to return (0 = all, max 1000)"
// @Success 200 {object} models.APIResponse{data=models.TitlesData} "Titles"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Router /titles [get]
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	req := validation.TitlesRequest{
		Prefix: r.URL.Query().Get("prefix"),
		Limit:  getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	var matches []string
	if req.Prefix == "" {
		if h.engine != nil {
			matches = h.engine.Matrix().Titles()
		}
	} else {
		matches = h.titles.Autocomplete(req.Prefix, 0)
	}

	total := len(matches)
	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	// Copy so the response never aliases matrix storage
	out := make([]string, len(matches))
	copy(out, matches)

	respondSuccess(w, r, models.TitlesData{
		Prefix: req.Prefix,
		Total:  total,
		Titles: out,
	}, models.Metadata{})
}
