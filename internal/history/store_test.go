// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package history

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

func openTestStore(t *testing.T, ttl time.Duration, maxEntries int) *Store {
	t.Helper()
	store, err := Open(&config.HistoryConfig{SessionTTL: ttl, MaxEntries: maxEntries})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func session(t *testing.T, store *Store, id string) *Session {
	t.Helper()
	h, err := store.ForSession(id)
	if err != nil {
		t.Fatalf("ForSession(%q) error = %v", id, err)
	}
	return h
}

func entry(searched string, recs ...string) recommend.HistoryEntry {
	return recommend.HistoryEntry{
		Searched:        searched,
		Recommendations: recs,
		Outcome:         recommend.OutcomeLocal,
		SearchedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSession_AppendAndEntries(t *testing.T) {
	store := openTestStore(t, time.Hour, 0)
	h := session(t, store, "s1")
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.HistoryAppends)

	want := []recommend.HistoryEntry{
		entry("Dune", "Emma", "Hyperion"),
		entry("Unknown"),
		entry("Emma", "Dune"),
	}
	want[1].Outcome = recommend.OutcomeRemote
	for _, e := range want {
		if err := h.Append(ctx, e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}

	// nil recommendations are stored as an empty list
	want[1].Recommendations = []string{}
	if len(got) != len(want) {
		t.Fatalf("len(Entries()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Searched != want[i].Searched || got[i].Outcome != want[i].Outcome ||
			!reflect.DeepEqual(got[i].Recommendations, want[i].Recommendations) ||
			!got[i].SearchedAt.Equal(want[i].SearchedAt) {
			t.Errorf("entry[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if delta := testutil.ToFloat64(metrics.HistoryAppends) - before; delta != 3 {
		t.Errorf("appends delta = %v, want 3", delta)
	}
}

func TestSession_StampsSearchedAt(t *testing.T) {
	store := openTestStore(t, time.Hour, 0)
	h := session(t, store, "s1")
	ctx := context.Background()

	if err := h.Append(ctx, recommend.HistoryEntry{Searched: "Dune"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	got, _ := h.Entries(ctx)
	if len(got) != 1 || got[0].SearchedAt.IsZero() {
		t.Errorf("entries = %+v, want SearchedAt set", got)
	}
}

func TestSession_Isolation(t *testing.T) {
	store := openTestStore(t, time.Hour, 0)
	ctx := context.Background()

	a := session(t, store, "a")
	ab := session(t, store, "ab")
	if err := a.Append(ctx, entry("Dune")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := ab.Append(ctx, entry("Emma")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	gotA, _ := a.Entries(ctx)
	gotAB, _ := ab.Entries(ctx)
	if len(gotA) != 1 || gotA[0].Searched != "Dune" {
		t.Errorf("session a = %+v", gotA)
	}
	if len(gotAB) != 1 || gotAB[0].Searched != "Emma" {
		t.Errorf("session ab = %+v", gotAB)
	}

	n, err := store.Sessions(ctx)
	if err != nil || n != 2 {
		t.Errorf("Sessions() = %d, %v; want 2", n, err)
	}

	if err := a.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if gotAB, _ = ab.Entries(ctx); len(gotAB) != 1 {
		t.Error("clearing one session must not touch another")
	}
}

func TestSession_MaxEntries(t *testing.T) {
	store := openTestStore(t, time.Hour, 3)
	h := session(t, store, "s1")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := h.Append(ctx, entry(fmt.Sprintf("Book %d", i))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	var searched []string
	for _, e := range got {
		searched = append(searched, e.Searched)
	}
	if want := []string{"Book 3", "Book 4", "Book 5"}; !reflect.DeepEqual(searched, want) {
		t.Errorf("entries = %v, want %v", searched, want)
	}
}

func TestSession_UnboundedByDefault(t *testing.T) {
	store := openTestStore(t, time.Hour, 0)
	h := session(t, store, "s1")
	ctx := context.Background()

	const n = 250
	for i := 1; i <= n; i++ {
		if err := h.Append(ctx, entry(fmt.Sprintf("Book %d", i))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != n {
		t.Fatalf("got %d entries, want %d", len(got), n)
	}
	if got[0].Searched != "Book 1" || got[n-1].Searched != fmt.Sprintf("Book %d", n) {
		t.Errorf("entries span %q..%q, want Book 1..Book %d", got[0].Searched, got[n-1].Searched, n)
	}
}

func TestSession_Clear(t *testing.T) {
	store := openTestStore(t, time.Hour, 0)
	h := session(t, store, "s1")
	ctx := context.Background()

	_ = h.Append(ctx, entry("Dune"))
	_ = h.Append(ctx, entry("Emma"))

	before := testutil.ToFloat64(metrics.HistoryClears)
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if delta := testutil.ToFloat64(metrics.HistoryClears) - before; delta != 1 {
		t.Errorf("clears delta = %v, want 1", delta)
	}

	got, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != 0 || got == nil {
		t.Errorf("Entries() after Clear = %#v, want empty non-nil", got)
	}

	// A cleared session can start over.
	if err := h.Append(ctx, entry("Hyperion")); err != nil {
		t.Fatalf("Append() after Clear error = %v", err)
	}
	if got, _ = h.Entries(ctx); len(got) != 1 {
		t.Errorf("len(Entries()) = %d, want 1", len(got))
	}
}

func TestSession_IdleExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping TTL test in short mode")
	}

	// BadgerDB TTLs have one-second resolution.
	store := openTestStore(t, time.Second, 0)
	h := session(t, store, "s1")
	ctx := context.Background()

	if err := h.Append(ctx, entry("Dune")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	time.Sleep(2500 * time.Millisecond)

	got, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Entries() after TTL = %d entries, want 0", len(got))
	}
}

func TestStore_ForSessionValidation(t *testing.T) {
	store := openTestStore(t, time.Hour, 0)

	for _, id := range []string{"", "a:b"} {
		if _, err := store.ForSession(id); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("ForSession(%q) error = %v, want ErrInvalidSession", id, err)
		}
	}
	h := session(t, store, "0b6f1c8e-6c2e-4d1b-9d7e-3f0b2f8a9c11")
	if h.ID() != "0b6f1c8e-6c2e-4d1b-9d7e-3f0b2f8a9c11" {
		t.Errorf("ID() = %q", h.ID())
	}
}

func TestSession_ConcurrentAppends(t *testing.T) {
	store := openTestStore(t, time.Hour, 0)
	ctx := context.Background()

	const sessions, perSession = 4, 10
	var wg sync.WaitGroup
	for s := 0; s < sessions; s++ {
		h := session(t, store, fmt.Sprintf("s%d", s))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSession; i++ {
				if err := h.Append(ctx, entry(fmt.Sprintf("%s-%d", h.ID(), i))); err != nil {
					t.Errorf("Append() error = %v", err)
				}
			}
		}()
	}
	wg.Wait()

	for s := 0; s < sessions; s++ {
		h := session(t, store, fmt.Sprintf("s%d", s))
		got, err := h.Entries(ctx)
		if err != nil {
			t.Fatalf("Entries() error = %v", err)
		}
		if len(got) != perSession {
			t.Fatalf("session %s has %d entries, want %d", h.ID(), len(got), perSession)
		}
		for i, e := range got {
			if want := fmt.Sprintf("%s-%d", h.ID(), i); e.Searched != want {
				t.Errorf("entry[%d] = %q, want %q", i, e.Searched, want)
			}
		}
	}
}
