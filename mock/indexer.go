package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.Indexer = (*Indexer)(nil)

// Indexer is a mock implementation of docsearch.Indexer.
type Indexer struct {
	BuildIndexFn func(ctx context.Context) (*docsearch.Index, error)
}

func (i *Indexer) BuildIndex(ctx context.Context) (*docsearch.Index, error) {
	return i.BuildIndexFn(ctx)
}

var _ docsearch.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docsearch.Searcher.
type Searcher struct {
	SearchFn func(query string) []docsearch.ScoredResult
}

func (s *Searcher) Search(query string) []docsearch.ScoredResult {
	return s.SearchFn(query)
}
