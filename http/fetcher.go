// Package http provides the HTTP bindings for docsearch: a Fetcher that
// loads documentation pages and a Server exposing search over a page.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/docsearch"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPageSize bounds the bytes read from a single page.
const DefaultMaxPageSize = 8 << 20

// UserAgent identifies page requests.
const UserAgent = "docsearch/1.0"

// Ensure Fetcher implements docsearch.Fetcher at compile time.
var _ docsearch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves static page HTML over HTTP. JavaScript is not executed.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	maxSize int64
	delays  []time.Duration
	logger  *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPageSize sets the largest accepted response body in bytes.
func WithMaxPageSize(n int64) Option {
	return func(f *Fetcher) {
		f.maxSize = n
	}
}

// WithRetryDelays retries transient failures once per delay, waiting the
// given duration before each attempt. Without it a failed fetch is final.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRetryLogger reports retry attempts to logger.
func WithRetryLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		maxSize: DefaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the HTML served at url.
// A 404 is reported as ENOTFOUND and an oversized body as EINVALID; neither
// is retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		if attempt > 0 {
			if f.logger != nil {
				f.logger.Warn("retry fetch", "url", url, "attempt", attempt+1, "err", lastErr)
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.delays[attempt-1]):
			}
		}

		html, err := f.fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !retryable(err) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

// retryable reports whether err may succeed on a later attempt.
func retryable(err error) bool {
	switch docsearch.ErrorCode(err) {
	case docsearch.ENOTFOUND, docsearch.EINVALID:
		return false
	}
	return true
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "invalid url %q", url)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,text/markdown;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", docsearch.Errorf(docsearch.ENOTFOUND, "page not found: %s", url)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", docsearch.Errorf(docsearch.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxSize {
		return "", docsearch.Errorf(docsearch.EINVALID, "page exceeds %d bytes: %s", f.maxSize, url)
	}
	return string(body), nil
}

// Close is a no-op; http.Client holds no resources that need releasing.
func (f *Fetcher) Close() error {
	return nil
}
