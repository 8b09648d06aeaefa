package docsearch

import "context"

// DefaultSectionTitle labels sections that have no top-level heading.
const DefaultSectionTitle = "Documentation"

// MaxContentLength bounds the content snippet stored per entry, in runes.
const MaxContentLength = 1000

// IndexEntry is one searchable unit derived from a heading and its
// surrounding text.
type IndexEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Section   string `json:"section"`
	SectionID string `json:"sectionId"`
	Level     int    `json:"level"`
	Content   string `json:"content"` // lower-cased
	Rank      int    `json:"rank"`
}

// RankForLevel returns the tier weight for a heading level.
// Top-level headings outrank sub-headings.
func RankForLevel(level int) int {
	switch level {
	case 1:
		return 5
	case 2:
		return 3
	case 3:
		return 2
	default:
		return 1
	}
}

// Validate returns an error if the entry contains invalid fields.
func (e *IndexEntry) Validate() error {
	if e.ID == "" {
		return Errorf(EINVALID, "index entry ID required")
	}
	if e.Rank <= 0 {
		return Errorf(EINVALID, "index entry %q rank must be positive", e.ID)
	}
	return nil
}

// Index is an ordered, immutable list of entries built once per session.
type Index struct {
	entries []*IndexEntry
	byID    map[string]int
}

// NewIndex validates entries and returns an index over them.
// Returns EINVALID on a duplicate ID or a non-positive rank.
func NewIndex(entries []*IndexEntry) (*Index, error) {
	idx := &Index{
		entries: make([]*IndexEntry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, ok := idx.byID[e.ID]; ok {
			return nil, Errorf(EINVALID, "duplicate index entry ID %q", e.ID)
		}
		cp := *e
		idx.byID[e.ID] = len(idx.entries)
		idx.entries = append(idx.entries, &cp)
	}
	return idx, nil
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Entries returns a copy of the entries in index order.
func (idx *Index) Entries() []IndexEntry {
	if idx == nil {
		return nil
	}
	out := make([]IndexEntry, len(idx.entries))
	for i, e := range idx.entries {
		out[i] = *e
	}
	return out
}

// Lookup returns the entry with the given ID.
func (idx *Index) Lookup(id string) (IndexEntry, bool) {
	if idx == nil {
		return IndexEntry{}, false
	}
	i, ok := idx.byID[id]
	if !ok {
		return IndexEntry{}, false
	}
	return *idx.entries[i], true
}

// Indexer builds the search index from a document.
type Indexer interface {
	// BuildIndex walks the document once and returns its index.
	BuildIndex(ctx context.Context) (*Index, error)
}
