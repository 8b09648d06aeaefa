package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	dshttp "github.com/fwojciec/docsearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns page body and sends user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<section class="content-section" id="intro"><h1>Intro</h1></section>`))
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Contains(t, html, `id="intro"`)
		assert.Equal(t, dshttp.UserAgent, gotUA)
	})

	t.Run("times out slow servers", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		fetcher := dshttp.NewFetcher(dshttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := dshttp.NewFetcher().Fetch(ctx, server.URL)

		require.Error(t, err)
	})

	t.Run("maps 404 to ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := dshttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})

	t.Run("returns error for other non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := dshttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("rejects oversized pages", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		}))
		defer server.Close()

		_, err := dshttp.NewFetcher(dshttp.WithMaxPageSize(32)).Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("rejects malformed urls", func(t *testing.T) {
		t.Parallel()

		_, err := dshttp.NewFetcher().Fetch(context.Background(), "://nope")

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("<h1>ok</h1>"))
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher(dshttp.WithRetryDelays(time.Millisecond, time.Millisecond))

		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<h1>ok</h1>", html)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("returns last error when retries run out", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher(dshttp.WithRetryDelays(time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher(dshttp.WithRetryDelays(time.Millisecond, time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stops retrying when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cancel()
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := dshttp.NewFetcher(dshttp.WithRetryDelays(time.Hour))

		_, err := fetcher.Fetch(ctx, server.URL)

		require.ErrorIs(t, err, context.Canceled)
	})
}
