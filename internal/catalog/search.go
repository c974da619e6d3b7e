package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Search queries the catalog for books matching query. An empty or
// whitespace-only query short-circuits to an empty result without touching
// the network. A response without items is a valid zero-result success;
// all failures come back as a *FetchError.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{Books: []Book{}}, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.language != "" {
		params.Set("langRestrict", c.language)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, networkError(err)
	}

	slog.Debug("Searching catalog", "query", query, "max_results", maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, networkError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpError(resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, parseError(err)
	}

	books := make([]Book, 0, len(payload.Items))
	for _, item := range payload.Items {
		books = append(books, item.toBook())
	}

	slog.Debug("Catalog search done", "query", query, "returned", len(books), "total", payload.TotalItems)

	return &Result{Books: books, TotalItems: payload.TotalItems}, nil
}
