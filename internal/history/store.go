// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// keyPrefix namespaces history keys in BadgerDB.
const keyPrefix = "history:"

// maxConflictRetries bounds retries of transactions that lost a write race.
const maxConflictRetries = 5

// ErrInvalidSession is returned for an empty session ID or one containing ':'.
var ErrInvalidSession = errors.New("invalid session id")

// Store holds the history of every session.
type Store struct {
	db         *badger.DB
	ttl        time.Duration
	maxEntries int
	seq        atomic.Uint64
	ownsDB     bool
}

// Open creates a Store backed by a private in-memory BadgerDB.
func Open(cfg *config.HistoryConfig) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	s := New(db, cfg.SessionTTL, cfg.MaxEntries)
	s.ownsDB = true
	return s, nil
}

// New creates a Store on an existing BadgerDB. A ttl <= 0 keeps entries until
// cleared; maxEntries <= 0 keeps every entry.
func New(db *badger.DB, ttl time.Duration, maxEntries int) *Store {
	return &Store{
		db:         db,
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Close closes the underlying database if the Store opened it.
func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// ForSession returns the History of one session.
func (s *Store) ForSession(id string) (*Session, error) {
	if id == "" || strings.Contains(id, ":") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSession, id)
	}
	return &Session{store: s, id: id}, nil
}

// Sessions returns the number of sessions with live entries.
func (s *Store) Sessions(ctx context.Context) (int, error) {
	seen := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			rest := strings.TrimPrefix(string(it.Item().Key()), keyPrefix)
			if i := strings.IndexByte(rest, ':'); i > 0 {
				seen[rest[:i]] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return len(seen), nil
}

// update runs fn in a read-write transaction, retrying on conflicts.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *Store) newEntry(key, value []byte) *badger.Entry {
	e := badger.NewEntry(key, value)
	if s.ttl > 0 {
		e = e.WithTTL(s.ttl)
	}
	return e
}

// Session is the History of a single session.
type Session struct {
	store *Store
	id    string
}

var _ recommend.History = (*Session)(nil)

// ID returns the session ID.
func (h *Session) ID() string {
	return h.id
}

func (h *Session) prefix() []byte {
	return []byte(keyPrefix + h.id + ":")
}

// Append implements recommend.History. It refreshes the TTL of the session's
// existing entries and drops the oldest beyond the entry limit.
//
//nolint:gocritic // hugeParam: entry is serialized by value
func (h *Session) Append(ctx context.Context, entry recommend.HistoryEntry) error {
	if entry.SearchedAt.IsZero() {
		entry.SearchedAt = time.Now()
	}
	if entry.Recommendations == nil {
		entry.Recommendations = []string{}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%020d", h.prefix(), h.store.seq.Add(1)))

	err = h.store.update(ctx, func(txn *badger.Txn) error {
		type kv struct{ key, value []byte }
		var existing []kv

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		prefix := h.prefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				it.Close()
				return err
			}
			existing = append(existing, kv{key: item.KeyCopy(nil), value: value})
		}
		it.Close()

		drop := 0
		if limit := h.store.maxEntries; limit > 0 && len(existing)+1 > limit {
			drop = len(existing) + 1 - limit
		}
		for i, old := range existing {
			if i < drop {
				if err := txn.Delete(old.key); err != nil {
					return err
				}
				continue
			}
			if err := txn.SetEntry(h.store.newEntry(old.key, old.value)); err != nil {
				return err
			}
		}
		return txn.SetEntry(h.store.newEntry(key, data))
	})
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	metrics.HistoryAppends.Inc()
	return nil
}

// Entries implements recommend.History.
func (h *Session) Entries(ctx context.Context) ([]recommend.HistoryEntry, error) {
	entries := []recommend.HistoryEntry{}

	err := h.store.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := h.prefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry recommend.HistoryEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return fmt.Errorf("decode history entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

// Clear implements recommend.History.
func (h *Session) Clear(ctx context.Context) error {
	err := h.store.update(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var keys [][]byte
		prefix := h.prefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	metrics.HistoryClears.Inc()
	return nil
}
