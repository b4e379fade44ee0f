// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

var (
	// ErrCatalogUnavailable covers network errors, timeouts and cancellation.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrCatalogStatus is returned for any non-200 response.
	ErrCatalogStatus = errors.New("catalog returned unexpected status")

	// ErrCatalogDecode is returned when the response body is not valid search JSON.
	ErrCatalogDecode = errors.New("catalog response could not be decoded")
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB)
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// searchResponse is the subset of the Open Library search document we use.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	CoverI     int64    `json:"cover_i"`
}

// Searcher is a catalog search that reports failures as errors.
type Searcher interface {
	SearchEntries(ctx context.Context, title string) ([]recommend.CatalogEntry, error)
}

var (
	_ Searcher          = (*Client)(nil)
	_ recommend.Catalog = (*Client)(nil)
)

// Client is an Open Library search client.
type Client struct {
	baseURL      string
	coverBaseURL string
	maxResults   int
	userAgent    string
	client       *http.Client
	limiter      *rate.Limiter
	logger       zerolog.Logger
}

// NewClient creates a new Open Library client from configuration.
//
// The client is configured with:
//   - cfg.Timeout as the HTTP timeout (default 10s)
//   - cfg.MaxResults documents per search (default 5)
//   - a token bucket of cfg.RequestsPerSecond / cfg.Burst (unlimited when <= 0)
func NewClient(cfg *config.CatalogConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		if burst <= 0 {
			burst = 1
		}
	}

	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		coverBaseURL: strings.TrimSuffix(cfg.CoverBaseURL, "/"),
		maxResults:   maxResults,
		userAgent:    cfg.UserAgent,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// Search implements recommend.Catalog without circuit breaking or caching.
func (c *Client) Search(ctx context.Context, title string) recommend.CatalogOutcome {
	entries, err := c.SearchEntries(ctx, title)
	return recommend.CatalogOutcome{Entries: entries, Err: err}
}

// SearchEntries performs one title search. Errors wrap one of the package
// sentinels; entries are nil whenever err is set.
func (c *Client) SearchEntries(ctx context.Context, title string) ([]recommend.CatalogEntry, error) {
	start := time.Now()
	entries, result, err := c.search(ctx, title)
	metrics.RecordCatalogRequest(result, time.Since(start))

	if err != nil {
		c.logger.Warn().Err(err).Str("title", title).Str("result", result).Msg("Catalog search failed")
		return nil, err
	}
	c.logger.Debug().Str("title", title).Int("entries", len(entries)).Dur("duration", time.Since(start)).Msg("Catalog search completed")
	return entries, nil
}

// search returns entries, the metrics result label and any error.
func (c *Client) search(ctx context.Context, title string) ([]recommend.CatalogEntry, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "unavailable", fmt.Errorf("%w: rate limiter: %w", ErrCatalogUnavailable, err)
	}

	params := url.Values{}
	params.Set("title", title)
	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, "unavailable", fmt.Errorf("%w: failed to create request: %w", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "unavailable", fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, "status", fmt.Errorf("%w: %d: %s", ErrCatalogStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, "decode", fmt.Errorf("%w: %w", ErrCatalogDecode, err)
	}

	return c.toEntries(decoded.Docs), "success", nil
}

// toEntries maps the first maxResults documents to catalog entries.
//
//nolint:gocritic // rangeValCopy: searchDoc is small
func (c *Client) toEntries(docs []searchDoc) []recommend.CatalogEntry {
	if len(docs) > c.maxResults {
		docs = docs[:c.maxResults]
	}

	entries := make([]recommend.CatalogEntry, 0, len(docs))
	for _, doc := range docs {
		entry := recommend.CatalogEntry{
			Title:  doc.Title,
			Author: strings.Join(doc.AuthorName, ", "),
		}
		if doc.Key != "" {
			entry.Link = c.baseURL + doc.Key
		}
		if doc.CoverI != 0 {
			entry.CoverURL = fmt.Sprintf("%s/b/id/%d-M.jpg", c.coverBaseURL, doc.CoverI)
		}
		entries = append(entries, entry)
	}
	return entries
}
