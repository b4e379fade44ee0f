// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
		path     string
	}{
		{OutcomeEmptyInput, "empty_input", "empty"},
		{OutcomeLocal, "local", "local"},
		{OutcomeRemote, "remote", "remote"},
		{OutcomeNoResults, "no_results", "remote"},
		{Outcome(99), "unknown", "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.outcome.String(); got != tt.expected {
				t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.expected)
			}
			if got := tt.outcome.Path(); got != tt.path {
				t.Errorf("Outcome(%d).Path() = %q, want %q", tt.outcome, got, tt.path)
			}
		})
	}
}

func TestOutcome_TextRoundTrip(t *testing.T) {
	for _, o := range []Outcome{OutcomeEmptyInput, OutcomeLocal, OutcomeRemote, OutcomeNoResults} {
		text, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", o, err)
		}
		var back Outcome
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) error = %v", text, err)
		}
		if back != o {
			t.Errorf("round trip of %v gave %v", o, back)
		}
	}

	var o Outcome
	if err := o.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected error for unknown outcome")
	}
}

func TestResult_JSON(t *testing.T) {
	avg := 4.25
	res := Result{
		Query:   "Dune",
		Outcome: OutcomeLocal,
		Items: []Item{
			{Title: "Hyperion", AverageRating: &avg, ImageURL: "http://img/h.jpg"},
		},
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["outcome"] != "local" {
		t.Errorf("outcome = %v, want local", decoded["outcome"])
	}
	items := decoded["items"].([]any)
	item := items[0].(map[string]any)
	if item["average_rating"] != 4.25 {
		t.Errorf("average_rating = %v, want 4.25", item["average_rating"])
	}
	if _, ok := item["author"]; ok {
		t.Error("author should be omitted on local items")
	}
}

func TestResult_EmptyItemsEncodeAsList(t *testing.T) {
	res := Result{Outcome: OutcomeEmptyInput, Items: []Item{}}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Items == nil {
		t.Errorf("items encoded as null: %s", data)
	}
}

func TestIndexLookupFault_Error(t *testing.T) {
	f := IndexLookupFault{Title: "Nope"}
	if got := f.Error(); got != `similarity index has no row for title "Nope"` {
		t.Errorf("Error() = %q", got)
	}
}
