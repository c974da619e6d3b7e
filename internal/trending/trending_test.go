package trending

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skoskinen/biblio/internal/catalog"
	"github.com/skoskinen/biblio/internal/testutil"
)

type stubSearcher struct {
	calls  int
	result *catalog.Result
	err    error
}

func (s *stubSearcher) Search(context.Context, string, int) (*catalog.Result, error) {
	s.calls++
	return s.result, s.err
}

func batch(n int, withThumbs bool) *catalog.Result {
	books := make([]catalog.Book, n)
	for i := range books {
		books[i] = catalog.Book{ID: string(rune('a' + i)), Title: "Book"}
		if withThumbs {
			books[i].Thumbnail = "https://books.example/thumb.jpg"
		}
	}
	return &catalog.Result{Books: books, TotalItems: n}
}

func TestFetchQueryCapsAndRequiresThumbnails(t *testing.T) {
	testutil.SetupTestCache(t)

	stub := &stubSearcher{result: batch(10, true)}

	books, err := FetchQuery(context.Background(), stub, "harry potter")
	require.NoError(t, err)

	assert.Len(t, books, MaxBooks)
	for _, book := range books {
		assert.NotEmpty(t, book.Thumbnail)
	}
}

func TestFetchQuerySkipsBooksWithoutThumbnails(t *testing.T) {
	testutil.SetupTestCache(t)

	result := batch(4, true)
	result.Books[1].Thumbnail = ""
	stub := &stubSearcher{result: result}

	books, err := FetchQuery(context.Background(), stub, "dune book")
	require.NoError(t, err)
	assert.Len(t, books, 3)
}

func TestFetchQueryUsesCacheOnRepeat(t *testing.T) {
	testutil.SetupTestCache(t)

	stub := &stubSearcher{result: batch(10, true)}

	_, err := FetchQuery(context.Background(), stub, "the hobbit")
	require.NoError(t, err)
	_, err = FetchQuery(context.Background(), stub, "the hobbit")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
}

func TestFetchQueryPropagatesErrors(t *testing.T) {
	testutil.SetupTestCache(t)

	stub := &stubSearcher{err: &catalog.FetchError{Kind: catalog.KindHTTP, StatusCode: 500, Message: "catalog returned status 500"}}

	_, err := FetchQuery(context.Background(), stub, "emma")
	require.Error(t, err)
}

func TestFetchPicksFromQueryPool(t *testing.T) {
	testutil.SetupTestCache(t)

	orig := pickQuery
	t.Cleanup(func() { pickQuery = orig })
	pickQuery = func() string { return "pride and prejudice" }

	stub := &stubSearcher{result: batch(2, true)}

	books, err := Fetch(context.Background(), stub)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}
