// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
)

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns dataset size, similarity index parameters, catalog circuit breaker state and active sessions
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthData} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := models.HealthData{
		Status:        "healthy",
		Version:       h.version,
		IndexMetric:   h.index.Metric,
		IndexK:        h.index.K,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.engine == nil {
		health.Status = "starting"
	} else {
		m := h.engine.Matrix()
		health.Titles = m.Len()
		health.Users = m.NumUsers()
		health.Records = m.NumRecords()
	}

	// An open breaker means remote lookups currently degrade to empty
	if h.catalog != nil {
		health.CatalogBreaker = h.catalog.BreakerState()
		if health.CatalogBreaker == "open" && health.Status == "healthy" {
			health.Status = "degraded"
		}
	}

	if h.history != nil {
		sessions, err := h.history.Sessions(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to count history sessions")
		}
		health.Sessions = sessions
	}

	respondSuccess(w, r, health, models.Metadata{})
}

// HealthLive handles liveness probe requests.
// Returns 200 while the process is serving HTTP.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]string{"status": "alive"}, models.Metadata{})
}

// HealthReady handles readiness probe requests.
// Returns 503 until the engine has been built.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Ready"
// @Failure 503 {object} models.APIResponse "Not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Recommendation engine is not ready", nil)
		return
	}
	respondSuccess(w, r, map[string]string{"status": "ready"}, models.Metadata{})
}
