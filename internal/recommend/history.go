// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"sync"
)

// History is one session's search history. Entries are append-only; a session
// ends by clearing its history. Implementations must not share state between
// sessions.
type History interface {
	// Append records a lookup.
	Append(ctx context.Context, entry HistoryEntry) error

	// Entries returns the recorded lookups, oldest first.
	Entries(ctx context.Context) ([]HistoryEntry, error)

	// Clear ends the session and discards its entries.
	Clear(ctx context.Context) error
}

// MemoryHistory is a process-local History. The zero value is ready to use and
// keeps every entry; NewMemoryHistory bounds it.
type MemoryHistory struct {
	mu         sync.Mutex
	entries    []HistoryEntry
	maxEntries int
}

// NewMemoryHistory creates a history that keeps the most recent maxEntries
// lookups. maxEntries <= 0 means unbounded.
func NewMemoryHistory(maxEntries int) *MemoryHistory {
	return &MemoryHistory{maxEntries: maxEntries}
}

// Append implements History.
//
//nolint:gocritic // hugeParam: entry is stored by value
func (h *MemoryHistory) Append(_ context.Context, entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry.Recommendations = append([]string(nil), entry.Recommendations...)
	h.entries = append(h.entries, entry)
	if h.maxEntries > 0 && len(h.entries) > h.maxEntries {
		h.entries = append([]HistoryEntry(nil), h.entries[len(h.entries)-h.maxEntries:]...)
	}
	return nil
}

// Entries implements History. The returned slice is a copy.
func (h *MemoryHistory) Entries(_ context.Context) ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

// Clear implements History.
func (h *MemoryHistory) Clear(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	return nil
}

// Len returns the number of recorded entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
