// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dune", "Dune"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"Café", "Café"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"a":1}`))
	b := generateETag([]byte(`{"a":2}`))
	if a == b {
		t.Error("different payloads produced the same ETag")
	}
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("ETag is not deterministic")
	}
}

func TestGetFloatParam(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    float64
		wantErr bool
	}{
		{"absent uses default", "", 0.5, false},
		{"blank uses default", "min_rating=%20", 0.5, false},
		{"integer", "min_rating=3", 3, false},
		{"decimal", "min_rating=7.25", 7.25, false},
		{"garbage", "min_rating=high", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, apiErr := getFloatParam(r, "min_rating", 0.5)
			if (apiErr != nil) != tt.wantErr {
				t.Fatalf("apiErr = %v, wantErr %v", apiErr, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetIntParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=x", nil)
	if got := getIntParam(r, "limit", 0); got != 25 {
		t.Errorf("limit = %d", got)
	}
	if got := getIntParam(r, "bad", 7); got != 7 {
		t.Errorf("bad = %d, want default", got)
	}
	if got := getIntParam(r, "missing", 3); got != 3 {
		t.Errorf("missing = %d, want default", got)
	}
}
