// Package slog provides logging decorators for docsearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingIndexer implements docsearch.Indexer.
var _ docsearch.Indexer = (*LoggingIndexer)(nil)

// LoggingIndexer wraps an Indexer with logging.
type LoggingIndexer struct {
	next   docsearch.Indexer
	logger *slog.Logger
}

// NewLoggingIndexer creates a new LoggingIndexer.
func NewLoggingIndexer(next docsearch.Indexer, logger *slog.Logger) *LoggingIndexer {
	return &LoggingIndexer{next: next, logger: logger}
}

// BuildIndex delegates to the wrapped indexer and logs the entry count.
func (i *LoggingIndexer) BuildIndex(ctx context.Context) (idx *docsearch.Index, err error) {
	defer func(begin time.Time) {
		i.logger.Info("build index",
			"entries", idx.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.BuildIndex(ctx)
}

// Ensure LoggingSearcher implements docsearch.Searcher.
var _ docsearch.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with debug logging.
type LoggingSearcher struct {
	next   docsearch.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docsearch.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher.
// Queries are logged at debug level since they arrive on every keystroke.
func (s *LoggingSearcher) Search(query string) (results []docsearch.ScoredResult) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"results", len(results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Search(query)
}

// Ensure LoggingPreferenceStore implements docsearch.PreferenceStore.
var _ docsearch.PreferenceStore = (*LoggingPreferenceStore)(nil)

// LoggingPreferenceStore wraps a PreferenceStore with debug logging.
// Values are not logged.
type LoggingPreferenceStore struct {
	next   docsearch.PreferenceStore
	logger *slog.Logger
}

// NewLoggingPreferenceStore creates a new LoggingPreferenceStore.
func NewLoggingPreferenceStore(next docsearch.PreferenceStore, logger *slog.Logger) *LoggingPreferenceStore {
	return &LoggingPreferenceStore{next: next, logger: logger}
}

// Get delegates to the wrapped store.
func (s *LoggingPreferenceStore) Get(ctx context.Context, key docsearch.PreferenceKey) (value string, err error) {
	defer func() {
		s.logger.Debug("preference get",
			"key", string(key),
			"found", err == nil,
			"err", ignoreNotFound(err),
		)
	}()
	return s.next.Get(ctx, key)
}

// Set delegates to the wrapped store.
func (s *LoggingPreferenceStore) Set(ctx context.Context, key docsearch.PreferenceKey, value string) (err error) {
	defer func() {
		s.logger.Debug("preference set", "key", string(key), "err", err)
	}()
	return s.next.Set(ctx, key, value)
}

// Delete delegates to the wrapped store.
func (s *LoggingPreferenceStore) Delete(ctx context.Context, key docsearch.PreferenceKey) (err error) {
	defer func() {
		s.logger.Debug("preference delete", "key", string(key), "err", err)
	}()
	return s.next.Delete(ctx, key)
}

// List delegates to the wrapped store.
func (s *LoggingPreferenceStore) List(ctx context.Context) (prefs []docsearch.Preference, err error) {
	defer func() {
		s.logger.Debug("preference list", "count", len(prefs), "err", err)
	}()
	return s.next.List(ctx)
}

func ignoreNotFound(err error) error {
	if docsearch.ErrorCode(err) == docsearch.ENOTFOUND {
		return nil
	}
	return err
}

// Ensure LoggingFetcher implements docsearch.Fetcher.
var _ docsearch.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   docsearch.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docsearch.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
