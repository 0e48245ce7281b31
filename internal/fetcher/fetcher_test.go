package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/covidwatch/internal/errors"
	"codeberg.org/mutker/covidwatch/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("header\nrow,1\n"))
	}))
	defer server.Close()

	source := fetcher.NewHTTPSource()
	data, err := source.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("header\nrow,1\n"), data)
}

func TestHTTPSourceNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	source := fetcher.NewHTTPSource()
	_, err := source.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrHTTPStatus))
}

func TestHTTPSourceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // connection refused

	source := fetcher.NewHTTPSource()
	_, err := source.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetchFailed))
}

func TestHTTPSourceContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := fetcher.NewHTTPSource()
	_, err := source.Fetch(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFileSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Deaths.csv")
	require.NoError(t, os.WriteFile(path, []byte("header\nrow,5\n"), 0o644))

	source := fetcher.NewFileSource()
	data, err := source.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []byte("header\nrow,5\n"), data)
}

func TestFileSourceMissingFile(t *testing.T) {
	source := fetcher.NewFileSource()
	_, err := source.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetchFailed))
}
