package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goldmark"
	"github.com/fwojciec/docsearch/goquery"
	dsslog "github.com/fwojciec/docsearch/slog"
)

// Compile-time interface verification.
var _ PageLoader = (*Loader)(nil)

// PageLoader loads a documentation page and builds its index.
type PageLoader interface {
	Load(ctx context.Context, source string) (*goquery.Page, *docsearch.Index, error)
}

// Loader reads pages from files, URLs or stdin. Markdown sources are
// rendered to page HTML first.
type Loader struct {
	Fetcher  docsearch.Fetcher
	Markdown *goldmark.Renderer
	Stdin    io.Reader
	Logger   *slog.Logger
}

// Load implements PageLoader.
func (l *Loader) Load(ctx context.Context, source string) (*goquery.Page, *docsearch.Index, error) {
	raw, err := l.read(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	html := raw
	if isMarkdown(source) {
		if html, err = l.Markdown.Render([]byte(raw)); err != nil {
			return nil, nil, err
		}
	}

	page, err := goquery.ParsePage(html)
	if err != nil {
		return nil, nil, err
	}
	idx, err := dsslog.NewLoggingIndexer(goquery.NewIndexer(page), l.Logger).BuildIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	return page, idx, nil
}

func (l *Loader) read(ctx context.Context, source string) (string, error) {
	switch {
	case source == "-":
		b, err := io.ReadAll(l.Stdin)
		return string(b), err
	case isURL(source):
		return l.Fetcher.Fetch(ctx, source)
	}

	b, err := os.ReadFile(source)
	if errors.Is(err, fs.ErrNotExist) {
		return "", docsearch.Errorf(docsearch.ENOTFOUND, "source %q not found", source)
	}
	return string(b), err
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isMarkdown(source string) bool {
	p := source
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			p = u.Path
		}
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
