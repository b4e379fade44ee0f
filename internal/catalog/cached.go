// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

var _ recommend.Catalog = (*Cached)(nil)

// Cached memoizes successful catalog outcomes per title. Failed outcomes are
// never cached so a recovering catalog is picked up on the next lookup.
type Cached struct {
	next  recommend.Catalog
	cache *cache.LRU[recommend.CatalogOutcome]
}

// NewCached wraps next with an LRU of size entries that expire after ttl.
func NewCached(next recommend.Catalog, size int, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: cache.NewLRU[recommend.CatalogOutcome](size, ttl),
	}
}

// Search implements recommend.Catalog.
func (c *Cached) Search(ctx context.Context, title string) recommend.CatalogOutcome {
	key := strings.TrimSpace(title)
	if out, ok := c.cache.Get(key); ok {
		metrics.RecordCatalogCache(true)
		return out
	}
	metrics.RecordCatalogCache(false)

	out := c.next.Search(ctx, title)
	if out.Err == nil {
		c.cache.Add(key, out)
	}
	return out
}

// Len returns the number of cached titles.
func (c *Cached) Len() int {
	return c.cache.Len()
}

// Purge removes expired entries and returns how many were dropped.
func (c *Cached) Purge() int {
	return c.cache.CleanupExpired()
}

// Service is the assembled catalog: cache, circuit breaker and HTTP client.
type Service struct {
	catalog recommend.Catalog
	cached  *Cached
	breaker *Breaker
}

var _ recommend.Catalog = (*Service)(nil)

// New assembles the catalog stack from configuration. A CacheSize of zero or
// less disables caching.
func New(cfg *config.CatalogConfig, logger zerolog.Logger) *Service {
	client := NewClient(cfg, logger)
	breaker := NewBreaker(client, &cfg.Breaker, logger)

	s := &Service{catalog: breaker, breaker: breaker}
	if cfg.CacheSize > 0 {
		s.cached = NewCached(breaker, cfg.CacheSize, cfg.CacheTTL)
		s.catalog = s.cached
	}
	return s
}

// Search implements recommend.Catalog.
func (s *Service) Search(ctx context.Context, title string) recommend.CatalogOutcome {
	return s.catalog.Search(ctx, title)
}

// BreakerState returns the circuit breaker state for health reporting.
func (s *Service) BreakerState() string {
	return s.breaker.State()
}

// CacheLen returns the number of cached titles, 0 when caching is disabled.
func (s *Service) CacheLen() int {
	if s.cached == nil {
		return 0
	}
	return s.cached.Len()
}

// PurgeCache drops expired cache entries.
func (s *Service) PurgeCache() int {
	if s.cached == nil {
		return 0
	}
	return s.cached.Purge()
}
