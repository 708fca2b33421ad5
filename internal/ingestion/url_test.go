package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (r *stubRenderer) Render(_ context.Context, _ string) (string, error) {
	r.calls++
	return r.html, r.err
}

func serveHTML(t *testing.T, status int, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not-a-url", "example.com", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, _, err := IngestFromURL(context.Background(), raw, URLOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
		})
	}
}

func TestIngestFromURL_Success(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<!DOCTYPE html>
<html><head><title>Jobs</title></head>
<body>
<nav>Nav</nav>
<main>
<h1>Chatbot Developer</h1>
<p>We need a   Python developer.</p>
<a href="/about">About us</a>
</main>
<footer>Footer</footer>
</body>
</html>`)

	cleanedText, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Contains(t, cleanedText, "Chatbot Developer")
	assert.Contains(t, cleanedText, "We need a Python developer.")
	assert.NotContains(t, cleanedText, "Nav")
	assert.NotContains(t, cleanedText, "Footer")

	require.NotNil(t, metadata)
	assert.Equal(t, server.URL, metadata.URL)
	assert.Equal(t, "Chatbot Developer", metadata.Title)
	assert.Equal(t, "", metadata.Platform)
	assert.Equal(t, []string{server.URL + "/about"}, metadata.ExtractedLinks)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := serveHTML(t, http.StatusNotFound, "")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<html><body>  </body></html>")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentExtractionFailed))
}

func TestIngestFromURL_BrowserFallback(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<html><body><div id="root">Loading...</div></body></html>`)
	rendered := "<html><body><main><h1>Rendered Job</h1><p>" + strings.Repeat("Django REST API work. ", 30) + "</p></main></body></html>"

	t.Run("rendered content replaces short HTTP text", func(t *testing.T) {
		renderer := &stubRenderer{html: rendered}
		text, meta, err := IngestFromURL(context.Background(), server.URL, URLOptions{UseBrowser: true, Renderer: renderer})
		require.NoError(t, err)
		assert.Equal(t, 1, renderer.calls)
		assert.Contains(t, text, "Rendered Job")
		assert.Equal(t, "Rendered Job", meta.Title)
	})

	t.Run("render failure keeps HTTP text", func(t *testing.T) {
		renderer := &stubRenderer{err: errors.New("chrome not installed")}
		text, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{UseBrowser: true, Renderer: renderer})
		require.NoError(t, err)
		assert.Equal(t, 1, renderer.calls)
		assert.Equal(t, "Loading...", text)
	})

	t.Run("browser disabled", func(t *testing.T) {
		renderer := &stubRenderer{html: rendered}
		text, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{Renderer: renderer})
		require.NoError(t, err)
		assert.Zero(t, renderer.calls)
		assert.Equal(t, "Loading...", text)
	})
}
