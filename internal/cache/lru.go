// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	defaultLRUCapacity = 1024
	defaultLRUTTL      = 5 * time.Minute
)

type lruItem[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// LRU is a size-bounded, TTL-expiring cache safe for concurrent use. The
// front of order is the most recently used key. Expired entries are dropped
// lazily by Get and in bulk by CleanupExpired.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time

	order *list.List
	index map[string]*list.Element

	hits, misses int64
}

// NewLRU returns a cache holding at most capacity entries for ttl each.
// Non-positive arguments select 1024 entries and five minutes.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = defaultLRUCapacity
	}
	if ttl <= 0 {
		ttl = defaultLRUTTL
	}
	return &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		it := el.Value.(*lruItem[V])
		if !c.now().After(it.expiresAt) {
			c.order.MoveToFront(el)
			c.hits++
			return it.value, true
		}
		c.drop(el)
	}
	c.misses++
	var zero V
	return zero, false
}

// Add stores value under key with a fresh TTL, evicting the least recently
// used entries beyond capacity.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp := c.now().Add(c.ttl)
	if el, ok := c.index[key]; ok {
		it := el.Value.(*lruItem[V])
		it.value, it.expiresAt = value, exp
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(&lruItem[V]{key: key, value: value, expiresAt: exp})
	for c.order.Len() > c.capacity {
		c.drop(c.order.Back())
	}
}

// Remove reports whether key was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// Len counts entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.index)
}

// CleanupExpired drops every expired entry and returns how many it dropped.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*lruItem[V]).expiresAt) {
			c.drop(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Stats returns lifetime hits and misses and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.order.Len()
}

// drop must be called with mu held.
func (c *LRU[V]) drop(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*lruItem[V]).key)
}
