// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/folio/internal/logging"
)

// SessionHeader is the request and response header carrying the session ID
// for clients that do not keep cookies.
const SessionHeader = "X-Session-ID"

const sessionIDKey contextKey = "session_id"

// SessionConfig controls how session cookies are issued.
type SessionConfig struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session resolves the caller's session ID and stores it in the request context.
type Session struct {
	cfg SessionConfig
}

// NewSession creates the session middleware. An empty cookie name falls back
// to folio_session.
func NewSession(cfg SessionConfig) *Session {
	if cfg.CookieName == "" {
		cfg.CookieName = "folio_session"
	}
	return &Session{cfg: cfg}
}

// Handler is the chi-compatible middleware function.
func (s *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.resolve(r)
		if !ok {
			id = uuid.New().String()
		}

		// Refresh the cookie on every response so its lifetime tracks the history TTL
		cookie := &http.Cookie{
			Name:     s.cfg.CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		}
		if s.cfg.TTL > 0 {
			cookie.MaxAge = int(s.cfg.TTL.Seconds())
		}
		http.SetCookie(w, cookie)
		w.Header().Set(SessionHeader, id)

		ctx := context.WithValue(r.Context(), sessionIDKey, id)
		ctx = logging.ContextWithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolve returns the session ID supplied by the client, preferring the header.
// Every accepted UUID spelling maps to the canonical lowercase form so one
// session has one key.
func (s *Session) resolve(r *http.Request) (string, bool) {
	if id, ok := canonicalSessionID(r.Header.Get(SessionHeader)); ok {
		return id, true
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return canonicalSessionID(c.Value)
	}
	return "", false
}

func canonicalSessionID(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	u, err := uuid.Parse(v)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithSessionID returns a context carrying the given session ID.
// Handlers outside the middleware chain (tests, the CLI) use it directly.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}
