package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"partsearch/internal/domain"
)

const defaultTimeout = 10 * time.Second

// AlgoliaClient is a minimal REST client for Algolia's search API
type AlgoliaClient struct {
	appID      string
	searchKey  string
	adminKey   string
	baseURL    string
	httpClient *http.Client
}

// AlgoliaOption configures an AlgoliaClient
type AlgoliaOption func(*AlgoliaClient)

// WithBaseURL points the client at a different host (tests, proxies)
func WithBaseURL(u string) AlgoliaOption {
	return func(c *AlgoliaClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) AlgoliaOption {
	return func(c *AlgoliaClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) AlgoliaOption {
	return func(c *AlgoliaClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithAdminKey sets the key used for listing indices
func WithAdminKey(key string) AlgoliaOption {
	return func(c *AlgoliaClient) { c.adminKey = key }
}

// NewAlgoliaClient creates a client for the given application
func NewAlgoliaClient(appID, searchKey string, opts ...AlgoliaOption) *AlgoliaClient {
	c := &AlgoliaClient{
		appID:     appID,
		searchKey: searchKey,
		baseURL:   fmt.Sprintf("https://%s-dsn.algolia.net", appID),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type queryRequest struct {
	Query       string `json:"query"`
	HitsPerPage int    `json:"hitsPerPage"`
}

type queryResponse struct {
	Hits   []domain.Item `json:"hits"`
	NbHits int           `json:"nbHits"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// IndexInfo describes one index of the application
type IndexInfo struct {
	Name     string `json:"name"`
	Entries  int    `json:"entries"`
	DataSize int64  `json:"dataSize"`
}

type listIndicesResponse struct {
	Items []IndexInfo `json:"items"`
}

// Search queries one index and returns at most limit hits
func (c *AlgoliaClient) Search(ctx context.Context, category, query string, limit int) ([]domain.Item, error) {
	body, err := json.Marshal(queryRequest{Query: query, HitsPerPage: limit})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/1/indexes/%s/query", c.baseURL, url.PathEscape(category))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, c.searchKey)

	start := time.Now()
	var resp queryResponse
	if err := c.do(req, category, &resp); err != nil {
		return nil, err
	}

	slog.Debug("algolia_search",
		slog.String("index", category),
		slog.String("query", query),
		slog.Int("hits", len(resp.Hits)),
		slog.Int("nb_hits", resp.NbHits),
		slog.Duration("duration", time.Since(start)))

	if limit > 0 && len(resp.Hits) > limit {
		resp.Hits = resp.Hits[:limit]
	}
	return resp.Hits, nil
}

// ListIndices lists the application's indices.
// Listing needs a key with the listIndexes ACL; the admin key is used when set.
func (c *AlgoliaClient) ListIndices(ctx context.Context) ([]IndexInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/1/indexes", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	key := c.adminKey
	if key == "" {
		key = c.searchKey
	}
	c.authorize(req, key)

	var resp listIndicesResponse
	if err := c.do(req, "", &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *AlgoliaClient) authorize(req *http.Request, key string) {
	req.Header.Set("X-Algolia-Application-Id", c.appID)
	req.Header.Set("X-Algolia-API-Key", key)
}

func (c *AlgoliaClient) do(req *http.Request, index string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var er errorResponse
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &er) == nil && er.Message != "" {
			msg = er.Message
		}
		return &ProviderError{Index: index, StatusCode: resp.StatusCode, Message: msg}
	}

	dec := json.NewDecoder(resp.Body)
	// Prices and ids keep their original textual form
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
