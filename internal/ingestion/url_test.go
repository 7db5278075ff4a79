package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/cvgen/internal/fetch"
)

func TestIngestFromURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><nav>Menu</nav><div class="job-description"><h2>About</h2><p>Build   tools</p></div><form>Apply</form></body></html>`))
	}))
	defer server.Close()

	logger := zaptest.NewLogger(t)
	text, metadata, err := IngestFromURL(context.Background(), fetch.NewFetcher(fetch.FetcherOptions{}, logger), server.URL, logger)
	require.NoError(t, err)
	assert.Equal(t, "About\nBuild tools", text)
	assert.Equal(t, "unknown", metadata.Platform)
	assert.Equal(t, server.URL, metadata.Source)
	assert.Equal(t, "html", metadata.Format)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := IngestFromURL(context.Background(), nil, server.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, _, err := IngestFromURL(context.Background(), nil, "not-a-url", nil)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
