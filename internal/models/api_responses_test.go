// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/recommend"
)

func TestAPIResponse_SuccessShape(t *testing.T) {
	avg := 8.5
	resp := APIResponse{
		Status: StatusSuccess,
		Data: RecommendationData{
			Query:     "Dune",
			Outcome:   recommend.OutcomeLocal,
			MinRating: 0.5,
			Items:     []recommend.Item{{Title: "Hyperion", AverageRating: &avg}},
		},
		Metadata: Metadata{Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), Theme: "dark"},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(data)

	for _, want := range []string{
		`"status":"success"`,
		`"outcome":"local"`,
		`"average_rating":8.5`,
		`"theme":"dark"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
	if strings.Contains(body, `"error"`) {
		t.Errorf("success response should omit error: %s", body)
	}
}

func TestAPIResponse_ErrorShape(t *testing.T) {
	resp := APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    ErrCodeValidation,
			Message: "min_rating must be between 0 and 10",
			Details: map[string]interface{}{"field": "min_rating"},
		},
		Metadata: Metadata{Timestamp: time.Now()},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		Status string   `json:"status"`
		Error  APIError `json:"error"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Status != StatusError || decoded.Error.Code != ErrCodeValidation {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Error.Details["field"] != "min_rating" {
		t.Errorf("details = %v", decoded.Error.Details)
	}
}

func TestRecommendationData_RemoteItemsOmitAverage(t *testing.T) {
	data, err := json.Marshal(RecommendationData{
		Query:   "Unknown Book",
		Outcome: recommend.OutcomeRemote,
		Items:   []recommend.Item{{Title: "Match", Author: "A. Writer", Link: "https://openlibrary.org/works/OL1W"}},
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "average_rating") {
		t.Errorf("remote items must not carry average_rating: %s", data)
	}
	if !strings.Contains(string(data), `"author":"A. Writer"`) {
		t.Errorf("author missing: %s", data)
	}
}
