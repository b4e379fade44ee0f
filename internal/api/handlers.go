// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"time"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/history"
	"github.com/tomtom215/folio/internal/recommend"
)

// CatalogStatus reports the health of the external catalog.
// catalog.Service satisfies it.
type CatalogStatus interface {
	BreakerState() string
}

// IndexInfo describes the fitted similarity index for health reporting.
type IndexInfo struct {
	Metric string
	K      int
}

// Dependencies groups what the handlers need. Engine and Config are
// required; History and Catalog are optional.
type Dependencies struct {
	Engine  *recommend.Engine
	History *history.Store
	Catalog CatalogStatus
	Index   IndexInfo
	Config  *config.Config
	Version string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Shared response and parameter helpers
//   - handlers_recommend.go: Recommendation and title endpoints
//   - handlers_history.go: Session history endpoints
//   - handlers_health.go: Health/monitoring endpoints
type Handler struct {
	engine    *recommend.Engine
	history   *history.Store
	catalog   CatalogStatus
	index     IndexInfo
	config    *config.Config
	titles    *cache.TitleTrie
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// The title trie used for prefix search is built once from the matrix rows.
//
// Example:
//
//	handler := api.NewHandler(api.Dependencies{Engine: engine, History: store, Config: cfg})
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8501", router.Routes())
//
//nolint:gocritic // hugeParam: dependencies are copied once at startup
func NewHandler(deps Dependencies) *Handler {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	version := deps.Version
	if version == "" {
		version = "dev"
	}

	var titles []string
	if deps.Engine != nil {
		titles = deps.Engine.Matrix().Titles()
	}

	return &Handler{
		engine:    deps.Engine,
		history:   deps.History,
		catalog:   deps.Catalog,
		index:     deps.Index,
		config:    cfg,
		titles:    cache.NewTitleTrieFrom(titles),
		version:   version,
		startTime: time.Now(),
	}
}
