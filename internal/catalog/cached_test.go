package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skoskinen/biblio/internal/testutil"
)

func TestCachedSearchHitsNetworkOnce(t *testing.T) {
	testutil.SetupTestCache(t)

	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(duneResponse))
	})

	client := newTestClient(t, mux)

	first, err := client.CachedSearch(context.Background(), "dune", 20)
	require.NoError(t, err)
	require.Len(t, first.Books, 2)

	second, err := client.CachedSearch(context.Background(), "dune", 20)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCachedSearchKeyIncludesMaxResults(t *testing.T) {
	testutil.SetupTestCache(t)

	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(duneResponse))
	})

	client := newTestClient(t, mux)

	_, err := client.CachedSearch(context.Background(), "dune", 20)
	require.NoError(t, err)
	_, err = client.CachedSearch(context.Background(), "dune", 5)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCachedSearchDoesNotCacheErrors(t *testing.T) {
	testutil.SetupTestCache(t)

	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(duneResponse))
	})

	client := newTestClient(t, mux)

	_, err := client.CachedSearch(context.Background(), "dune", 20)
	require.Error(t, err)

	result, err := client.CachedSearch(context.Background(), "dune", 20)
	require.NoError(t, err)
	assert.Len(t, result.Books, 2)
	assert.Equal(t, 2, calls)
}

func TestCachedSearchEmptyQuerySkipsCache(t *testing.T) {
	testutil.SetupTestCache(t)

	client := newTestClient(t, http.NewServeMux())

	result, err := client.CachedSearch(context.Background(), "  ", 20)
	require.NoError(t, err)
	assert.Empty(t, result.Books)
}
