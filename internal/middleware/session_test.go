// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func serveSession(t *testing.T, s *Session, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var captured string
	h := s.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetSessionID(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return captured, rec
}

func TestSession_IssuesNewID(t *testing.T) {
	t.Parallel()

	s := NewSession(SessionConfig{TTL: 2 * time.Hour})
	id, rec := serveSession(t, s, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("issued session ID %q is not a UUID: %v", id, err)
	}
	if got := rec.Header().Get(SessionHeader); got != id {
		t.Errorf("%s header = %q, want %q", SessionHeader, got, id)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "folio_session" || c.Value != id {
		t.Errorf("cookie = %s=%s, want folio_session=%s", c.Name, c.Value, id)
	}
	if !c.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
	if c.MaxAge != 7200 {
		t.Errorf("cookie MaxAge = %d, want 7200", c.MaxAge)
	}
}

func TestSession_Resolution(t *testing.T) {
	t.Parallel()

	known := uuid.New().String()
	other := uuid.New().String()

	tests := []struct {
		name   string
		header string
		cookie string
		want   string // empty means a fresh ID is expected
	}{
		{name: "cookie", cookie: known, want: known},
		{name: "header", header: known, want: known},
		{name: "header wins over cookie", header: known, cookie: other, want: known},
		{name: "invalid header falls back to cookie", header: "not-a-uuid", cookie: other, want: other},
		{name: "invalid values issue new session", header: "x", cookie: "../etc"},
		{name: "urn header is canonicalized", header: "urn:uuid:" + known, want: known},
		{name: "braced header is canonicalized", header: "{" + known + "}", want: known},
		{name: "upper case cookie is canonicalized", cookie: strings.ToUpper(known), want: known},
	}

	s := NewSession(SessionConfig{CookieName: "sid"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sid", Value: tt.cookie})
			}

			got, rec := serveSession(t, s, req)

			if tt.want != "" {
				if got != tt.want {
					t.Errorf("session = %q, want %q", got, tt.want)
				}
				if h := rec.Header().Get(SessionHeader); h != tt.want {
					t.Errorf("%s header = %q, want %q", SessionHeader, h, tt.want)
				}
				return
			}
			if got == known || got == other {
				t.Errorf("expected a fresh session, got existing %q", got)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("fresh session %q is not a UUID", got)
			}
		})
	}
}
