package httpclient

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"LiveScore/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *http.Client {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewHTTPClient(config.FetchConfig{TimeoutSeconds: 5}, config.SourceConfig{}, l)
}

func TestFetchText_SendsBrowserHeaders(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	body, err := FetchText(context.Background(), testClient(), srv.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, config.DefaultUserAgent, gotUA)
	assert.Equal(t, "en-US,en;q=0.9", gotLang)

	_, err = FetchText(context.Background(), testClient(), srv.URL, "custom-agent")
	require.NoError(t, err)
	assert.Equal(t, "custom-agent", gotUA)
}

func TestFetchText_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := FetchText(context.Background(), testClient(), srv.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchText_DecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = io.WriteString(gz, "<html>compressed</html>")
		_ = gz.Close()
	}))
	defer srv.Close()

	body, err := FetchText(context.Background(), testClient(), srv.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "<html>compressed</html>", body)
}

func TestFetchText_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "late")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FetchText(ctx, testClient(), srv.URL, "")
	assert.Error(t, err)
}
