// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"reflect"
	"sync"
	"testing"
)

func TestMemoryHistory(t *testing.T) {
	ctx := context.Background()
	h := NewMemoryHistory(0)

	recs := []string{"B", "C"}
	if err := h.Append(ctx, HistoryEntry{Searched: "A", Recommendations: recs}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	// Mutating the caller's slice must not change the stored entry
	recs[0] = "Z"

	if err := h.Append(ctx, HistoryEntry{Searched: "D"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	entries, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Searched != "A" || entries[1].Searched != "D" {
		t.Errorf("entries not oldest first: %+v", entries)
	}
	if !reflect.DeepEqual(entries[0].Recommendations, []string{"B", "C"}) {
		t.Errorf("stored recommendations = %v", entries[0].Recommendations)
	}

	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d", h.Len())
	}
}

func TestMemoryHistory_MaxEntries(t *testing.T) {
	ctx := context.Background()
	h := NewMemoryHistory(2)

	for _, title := range []string{"A", "B", "C"} {
		_ = h.Append(ctx, HistoryEntry{Searched: title})
	}

	entries, _ := h.Entries(ctx)
	if len(entries) != 2 || entries[0].Searched != "B" || entries[1].Searched != "C" {
		t.Errorf("entries = %+v, want [B C]", entries)
	}
}

func TestMemoryHistory_Concurrent(t *testing.T) {
	ctx := context.Background()
	var h MemoryHistory

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Append(ctx, HistoryEntry{Searched: "x"})
			_, _ = h.Entries(ctx)
		}()
	}
	wg.Wait()

	if h.Len() != 20 {
		t.Errorf("Len() = %d, want 20", h.Len())
	}
}
