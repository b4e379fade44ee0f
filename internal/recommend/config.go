// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the lookup engine.
type Config struct {
	// Neighbors is the k passed to the similarity index. The queried title
	// occupies one slot, so at most Neighbors-1 titles are recommended.
	// Default: 10.
	Neighbors int `json:"neighbors"`

	// EnrichLinks attaches the first catalog link to each local recommendation.
	// Default: true.
	EnrichLinks bool `json:"enrich_links"`

	// EnrichWorkers bounds concurrent catalog calls during link enrichment.
	// Default: 4.
	EnrichWorkers int `json:"enrich_workers"`

	// EnrichTimeout bounds the whole enrichment phase of one lookup.
	// Candidates not enriched in time are returned without a link.
	// Default: 15s.
	EnrichTimeout time.Duration `json:"enrich_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Neighbors:     10,
		EnrichLinks:   true,
		EnrichWorkers: 4,
		EnrichTimeout: 15 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Neighbors < 2 {
		return fmt.Errorf("neighbors must be at least 2, got %d", c.Neighbors)
	}
	if c.EnrichLinks && c.EnrichWorkers <= 0 {
		return fmt.Errorf("enrich_workers must be positive when enrich_links is set, got %d", c.EnrichWorkers)
	}
	if c.EnrichLinks && c.EnrichTimeout <= 0 {
		return fmt.Errorf("enrich_timeout must be positive when enrich_links is set, got %v", c.EnrichTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
