package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/skoskinen/biblio/internal/cache"
)

// CachedSearch behaves like Search but stores successful responses in the
// catalog cache table. Shelf additions use this path; the live search
// session talks to Search directly so a committed query always reflects
// the service.
func (c *Client) CachedSearch(ctx context.Context, query string, maxResults int) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{Books: []Book{}}, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	cacheKey := fmt.Sprintf("%s|%d|%s", query, maxResults, c.language)

	result, _, err := cache.GetOrFetch("catalog_cache", cacheKey, func() (*Result, error) {
		return c.Search(ctx, query, maxResults)
	})
	return result, err
}
