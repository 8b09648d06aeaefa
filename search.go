package docsearch

import (
	"slices"
	"strings"
)

// Search limits.
const (
	// MinQueryLength is the shortest trimmed query that is scored.
	MinQueryLength = 2

	// MaxResults caps the number of results returned for a query.
	MaxResults = 7
)

// Score weights.
const (
	titleMatchWeight   = 10
	contentMatchWeight = 1
)

// ScoredResult is an IndexEntry scored against one query.
type ScoredResult struct {
	IndexEntry
	Score int `json:"score"`
}

// Query is a case-folded, whitespace-split search query.
type Query struct {
	Raw   string
	Terms []string
}

// ParseQuery trims, lower-cases and splits s into non-empty terms.
func ParseQuery(s string) Query {
	q := strings.ToLower(strings.TrimSpace(s))
	return Query{Raw: q, Terms: strings.Fields(q)}
}

// Valid reports whether the query is long enough to be scored.
func (q Query) Valid() bool {
	return len([]rune(q.Raw)) >= MinQueryLength && len(q.Terms) > 0
}

// Score returns the entry's score for the query terms: Rank*10 for each term
// found in the title and 1 for each term found in the content.
func (q Query) Score(e *IndexEntry) int {
	title := strings.ToLower(e.Title)
	score := 0
	for _, term := range q.Terms {
		if strings.Contains(title, term) {
			score += e.Rank * titleMatchWeight
		}
		if strings.Contains(e.Content, term) {
			score += contentMatchWeight
		}
	}
	return score
}

// Search scores every entry of idx against query and returns at most
// MaxResults entries ordered by descending score. Entries with equal score
// keep their index order. Queries shorter than MinQueryLength return nil.
func Search(query string, idx *Index) []ScoredResult {
	q := ParseQuery(query)
	if !q.Valid() || idx.Len() == 0 {
		return nil
	}

	var results []ScoredResult
	for _, e := range idx.entries {
		if score := q.Score(e); score > 0 {
			results = append(results, ScoredResult{IndexEntry: *e, Score: score})
		}
	}

	slices.SortStableFunc(results, func(a, b ScoredResult) int {
		return b.Score - a.Score
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// Searcher answers queries against a cached index.
type Searcher interface {
	Search(query string) []ScoredResult
}

// Ensure Engine implements Searcher at compile time.
var _ Searcher = (*Engine)(nil)

// Engine is a Searcher over an immutable index. It is safe for concurrent use.
type Engine struct {
	index *Index
}

// NewEngine returns an Engine over idx.
func NewEngine(idx *Index) *Engine {
	return &Engine{index: idx}
}

// Search implements Searcher.
func (e *Engine) Search(query string) []ScoredResult {
	return Search(query, e.index)
}

// Index returns the engine's index.
func (e *Engine) Index() *Index {
	return e.index
}
