// Package trending produces a small rotating batch of well-known titles to
// show when there is no active search.
package trending

import (
	"context"
	"math/rand/v2"

	"github.com/skoskinen/biblio/internal/cache"
	"github.com/skoskinen/biblio/internal/catalog"
)

const (
	fetchCount = 10
	// MaxBooks caps the trending batch size.
	MaxBooks = 6
)

// queries is the pool of searches that stand in for a real trending feed;
// the catalog API has no popularity endpoint.
var queries = []string{
	"harry potter",
	"lord of the rings",
	"the hobbit",
	"a song of ice and fire",
	"dune book",
	"the alchemist",
	"to kill a mockingbird",
	"1984 book",
	"pride and prejudice",
	"the great gatsby",
}

var pickQuery = func() string {
	return queries[rand.IntN(len(queries))]
}

// Searcher is the catalog surface trending needs.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (*catalog.Result, error)
}

// Fetch returns up to MaxBooks trending titles from a pseudo-randomly
// picked query. Batches are cached per query so repeat runs inside the TTL
// stay off the network.
func Fetch(ctx context.Context, client Searcher) ([]catalog.Book, error) {
	return FetchQuery(ctx, client, pickQuery())
}

// FetchQuery is Fetch with an explicit query.
func FetchQuery(ctx context.Context, client Searcher, query string) ([]catalog.Book, error) {
	books, _, err := cache.GetOrFetch("trending_cache", query, func() ([]catalog.Book, error) {
		result, err := client.Search(ctx, query, fetchCount)
		if err != nil {
			return nil, err
		}
		return filter(result.Books), nil
	})
	return books, err
}

// filter keeps only books with a thumbnail (covers make the batch) and caps
// the count.
func filter(books []catalog.Book) []catalog.Book {
	out := make([]catalog.Book, 0, MaxBooks)
	for _, book := range books {
		if len(out) >= MaxBooks {
			break
		}
		if book.Thumbnail == "" {
			continue
		}
		out = append(out, book)
	}
	return out
}
