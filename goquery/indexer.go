package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
	"golang.org/x/net/html/atom"
)

// Ensure Indexer implements docsearch.Indexer at compile time.
var _ docsearch.Indexer = (*Indexer)(nil)

// Indexer builds the search index from the sections and headings of a Page.
// Headings and sections without an id are assigned one in the page.
type Indexer struct {
	page *Page
	next int
}

// NewIndexer creates a new Indexer over page.
func NewIndexer(page *Page) *Indexer {
	return &Indexer{page: page}
}

// BuildIndex walks content sections in document order and indexes every
// h1-h4 heading within them. Sections without a heading are skipped.
func (ix *Indexer) BuildIndex(ctx context.Context) (*docsearch.Index, error) {
	ix.page.mu.Lock()
	defer ix.page.mu.Unlock()

	doc := ix.page.doc

	// Ids already in the document; generated ids must not collide with them
	// and an id is only kept if exactly one element carries it.
	ids := &idSet{count: make(map[string]int), used: make(map[string]bool)}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids.count[id]++
	})

	var entries []*docsearch.IndexEntry
	var ctxErr error
	doc.Find(SectionSelector).EachWithBreak(func(_ int, section *goquery.Selection) bool {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			return false
		}

		headings := section.Find(HeadingSelector)
		if headings.Length() == 0 {
			return true
		}

		sectionID := ix.ensureID(section, "search-section", ids)
		title := docsearch.DefaultSectionTitle
		if h1 := section.Find("h1").First(); h1.Length() > 0 {
			if t := collapse(h1.Text()); t != "" {
				title = t
			}
		}

		headings.Each(func(_ int, h *goquery.Selection) {
			level := headingLevel(h)
			text := collapse(h.Text())
			id := ix.ensureID(h, "search-heading", ids)

			entries = append(entries, &docsearch.IndexEntry{
				ID:        id,
				Title:     text,
				Section:   title,
				SectionID: sectionID,
				Level:     level,
				Content:   snippet(collapse(h.Parent().Text()), text),
				Rank:      docsearch.RankForLevel(level),
			})
		})
		return true
	})
	if ctxErr != nil {
		return nil, ctxErr
	}

	return docsearch.NewIndex(entries)
}

type idSet struct {
	count map[string]int
	used  map[string]bool
}

// ensureID returns the element's id, assigning a generated one if the
// element has none, shares it with another element, or it was already used.
func (ix *Indexer) ensureID(s *goquery.Selection, prefix string, ids *idSet) string {
	if id, ok := s.Attr("id"); ok && id != "" && ids.count[id] == 1 && !ids.used[id] {
		ids.used[id] = true
		return id
	}
	for {
		ix.next++
		id := fmt.Sprintf("%s-%d", prefix, ix.next)
		if ids.count[id] == 0 {
			ids.count[id] = 1
			ids.used[id] = true
			s.SetAttr("id", id)
			return id
		}
	}
}

func headingLevel(h *goquery.Selection) int {
	switch h.Get(0).DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	default:
		return 4
	}
}

// collapse trims s and collapses internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// snippet lower-cases block and bounds it to docsearch.MaxContentLength
// runes, keeping the heading text inside the window.
func snippet(block, heading string) string {
	block = strings.ToLower(block)
	heading = strings.ToLower(heading)
	runes := []rune(block)
	if len(runes) <= docsearch.MaxContentLength {
		return block
	}

	start := 0
	if i := strings.Index(block, heading); i >= 0 {
		start = len([]rune(block[:i]))
	}
	if start+docsearch.MaxContentLength > len(runes) {
		start = len(runes) - docsearch.MaxContentLength
	}
	return string(runes[start : start+docsearch.MaxContentLength])
}
