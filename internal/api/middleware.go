// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
)

// RateLimitConfig is a fixed window request budget per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// healthRateLimit is generous because probes poll often.
var healthRateLimit = RateLimitConfig{Requests: 1000, Window: time.Minute}

// MiddlewareConfig collects the cross-origin and rate limit policy.
type MiddlewareConfig struct {
	CORS              cors.Options
	RateLimit         RateLimitConfig
	RateLimitDisabled bool
	RateLimitKey      httprate.KeyFunc // nil keys by IP
}

// DefaultMiddlewareConfig allows no cross-origin callers and 100 lookups a
// minute per IP.
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		CORS: cors.Options{
			AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.SessionHeader, middleware.HeaderRequestID},
			ExposedHeaders: []string{middleware.SessionHeader, middleware.HeaderRequestID},
			MaxAge:         int((24 * time.Hour).Seconds()),
		},
		RateLimit: RateLimitConfig{Requests: 100, Window: time.Minute},
	}
}

// MiddlewareConfigFromSecurity applies the SECURITY_* settings to the
// defaults. Credentials are only allowed for an explicit origin list.
func MiddlewareConfigFromSecurity(sec *config.SecurityConfig) MiddlewareConfig {
	mc := DefaultMiddlewareConfig()
	if sec == nil {
		return mc
	}
	mc.CORS.AllowedOrigins = sec.CORSOrigins
	mc.CORS.AllowCredentials = len(sec.CORSOrigins) > 0 && !slices.Contains(sec.CORSOrigins, "*")
	if sec.RateLimitReqs > 0 {
		mc.RateLimit.Requests = sec.RateLimitReqs
	}
	if sec.RateLimitWindow > 0 {
		mc.RateLimit.Window = sec.RateLimitWindow
	}
	mc.RateLimitDisabled = sec.RateLimitDisabled
	return mc
}

// Middleware hands out the router's CORS and rate limit handlers.
type Middleware struct {
	cfg  MiddlewareConfig
	cors func(http.Handler) http.Handler
}

func NewMiddleware(cfg MiddlewareConfig) *Middleware {
	return &Middleware{cfg: cfg, cors: cors.Handler(cfg.CORS)}
}

// CORS must wrap every route so preflight requests are answered.
func (m *Middleware) CORS() func(http.Handler) http.Handler { return m.cors }

// RateLimit applies the configured budget.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(m.cfg.RateLimit)
}

// RateLimitHealth applies the probe budget.
func (m *Middleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.limit(healthRateLimit)
}

func (m *Middleware) limit(rl RateLimitConfig) func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	key := m.cfg.RateLimitKey
	if key == nil {
		key = httprate.KeyByIP
	}
	return httprate.Limit(rl.Requests, rl.Window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Warn().
		Str("path", r.URL.Path).
		Str("remote_addr", sanitizeLogValue(r.RemoteAddr)).
		Msg("Rate limit exceeded")
	respondError(w, http.StatusTooManyRequests, models.ErrCodeRateLimit, "Too many requests, slow down", nil)
}

// securityHeaders sets nosniff, frame denial and referrer policy on API
// responses, plus HSTS when the request reached us over TLS (directly or
// through a proxy that says so).
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}
