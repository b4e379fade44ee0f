// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
)

// Router binds the Handler to Folio's URL space.
type Router struct {
	handler *Handler
	mw      *Middleware
	session *middleware.Session
}

// NewRouter builds a Router. cfg supplies the CORS, rate limit and session
// cookie settings; nil uses the defaults.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Router{
		handler: handler,
		mw:      NewMiddleware(MiddlewareConfigFromSecurity(&cfg.Security)),
		session: middleware.NewSession(middleware.SessionConfig{
			CookieName: cfg.History.CookieName,
			Secure:     cfg.History.CookieSecure,
			TTL:        cfg.History.SessionTTL,
		}),
	}
}

// adapt lifts a HandlerFunc middleware into chi's shape.
func adapt(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return mw(next.ServeHTTP) }
}

// Routes returns the complete HTTP handler:
//
//	/api/v1/health[/live|/ready]   probes, probe rate limit
//	/api/v1/recommendations        lookup, records session history
//	/api/v1/titles                 local title listing
//	/api/v1/history                GET lists, DELETE ends the session
//	/metrics, /swagger/*
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(adapt(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.mw.CORS())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, models.ErrCodeMethod, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(rt.mw.RateLimitHealth(), securityHeaders)
		r.Get("/", rt.handler.Health)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.mw.RateLimit(), securityHeaders)
		r.Use(adapt(middleware.PrometheusMetrics))
		r.Use(rt.session.Handler)

		r.Get("/recommendations", rt.handler.Recommendations)
		r.Get("/titles", rt.handler.Titles)
		r.Get("/history", rt.handler.History)
		r.Delete("/history", rt.handler.ClearHistory)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))
	return r
}
