package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvgen/internal/types"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, &Options{UserAgent: "custom-agent", Headers: map[string]string{"X-Test": "yes"}})
	require.NoError(t, err)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://example.com/file", "", "http://"} {
		t.Run(u, func(t *testing.T) {
			_, err := URL(context.Background(), u, nil)
			require.Error(t, err)

			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, types.FetchInvalidURL, fetchErr.Kind)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, types.FetchHTTPStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "404")

	tag := fetchErr.FetchError()
	assert.Equal(t, types.FetchHTTPStatus, tag.Kind)
	assert.Equal(t, 404, tag.StatusCode)
}

func TestURL_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := URL(context.Background(), server.URL, &Options{Timeout: 50 * time.Millisecond})
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, types.FetchTimeout, fetchErr.Kind)
	assert.Contains(t, err.Error(), "timed out")
}

func TestURL_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := URL(context.Background(), addr, nil)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, types.FetchNetwork, fetchErr.Kind)
}

func TestExtractMainText_WithMainElement(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Main Content</h1>
				<p>This is the important text.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Main Content")
	assert.Contains(t, text, "important text")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractMainText_LinesPerBlock(t *testing.T) {
	html := `<body><main><h2>About</h2><p>First   paragraph</p><ul><li>One</li><li>Two</li></ul></main></body>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "About\nFirst paragraph\nOne\nTwo", text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `<html><body><div>Just body text</div><script>var x = 1;</script></body></html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Just body text", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<body><main><p>Keep</p><div class="eeo-statement">Drop</div></main></body>`

	text, err := ExtractMainText(html, DefaultTextSelectors(), ".eeo-statement")
	require.NoError(t, err)
	assert.Equal(t, "Keep", text)
}

func TestExtractMainText_JobPostingSelectors(t *testing.T) {
	html := `<body><main>Wrapper</main><div class="job-description">Build things</div></body>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Build things", text)
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", CleanWhitespace("  a   b \n\n\t\n c  "))
	assert.Equal(t, "", CleanWhitespace(" \n \n"))
}
