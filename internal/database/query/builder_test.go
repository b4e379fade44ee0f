// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package query

import (
	"reflect"
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_Combined(t *testing.T) {
	wb := NewWhereBuilder().
		AddClause("rating IS NOT NULL").
		AddIn("title", []string{"Dune", "Emma"}).
		AddIn("user_id", nil).
		AddClause("rating >= ?", 3.0)

	whereClause, args := wb.BuildWithPrefix()
	want := "WHERE rating IS NOT NULL AND title IN (?, ?) AND rating >= ?"
	if whereClause != want {
		t.Errorf("BuildWithPrefix() = %q, want %q", whereClause, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"Dune", "Emma", 3.0}) {
		t.Errorf("args = %v", args)
	}
	if wb.Count() != 3 {
		t.Errorf("Count() = %d, want 3", wb.Count())
	}
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{QuoteLiteral, "plain.csv", "'plain.csv'"},
		{QuoteLiteral, "o'brien.csv", "'o''brien.csv'"},
		{QuoteIdent, "title", `"title"`},
		{QuoteIdent, `we"ird`, `"we""ird"`},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{"ratings.csv", "auto", FormatCSV, false},
		{"ratings.CSV.gz", "", FormatCSV, false},
		{"ratings.tsv", "auto", FormatCSV, false},
		{"ratings.parquet", "auto", FormatParquet, false},
		{"ratings.pq", "auto", FormatParquet, false},
		{"ratings.bin", "csv", FormatCSV, false},
		{"ratings.csv", "PARQUET", FormatParquet, false},
		{"ratings.pkl", "auto", "", true},
		{"ratings.csv", "json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.format, func(t *testing.T) {
			got, err := DetectFormat(tt.path, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	src, err := FileSource("/data/it's.parquet", FormatAuto)
	if err != nil {
		t.Fatalf("FileSource() error = %v", err)
	}
	if src != "read_parquet('/data/it''s.parquet')" {
		t.Errorf("FileSource(parquet) = %q", src)
	}

	src, err = FileSource("/data/final_rating.csv", FormatAuto)
	if err != nil {
		t.Fatalf("FileSource() error = %v", err)
	}
	if src != "read_csv_auto('/data/final_rating.csv', header = true)" {
		t.Errorf("FileSource(csv) = %q", src)
	}

	if _, err := FileSource("/data/model.pkl", FormatAuto); err == nil {
		t.Error("FileSource(pkl) should fail")
	}
}
