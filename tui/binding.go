// Package tui provides an interactive terminal search over an index using
// bubbletea. The Binding turns Session callbacks into program messages and
// the Model renders them.
package tui

import (
	"context"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var (
	_ docsearch.ResultsPanel = (*Binding)(nil)
	_ docsearch.Navigator    = (*Binding)(nil)
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Messages sent by Binding.
type (
	resultsMsg        struct{ results []docsearch.ScoredResult }
	emptyMsg          struct{}
	hideMsg           struct{}
	activateMsg       struct{ sectionID string }
	scrollMsg         struct{ id string }
	highlightMsg      struct{ id string }
	clearHighlightMsg struct{ id string }
)

// Binding implements the panel and navigator capabilities of a Session for
// the terminal. Calls are queued and delivered to the program in order by
// a separate goroutine, so Session callbacks never wait on the UI loop.
type Binding struct {
	index    *docsearch.Index
	sections map[string]bool

	mu     sync.Mutex
	active string
	queue  []tea.Msg
	notify chan struct{}
}

// NewBinding creates a Binding over idx. The first indexed section starts
// active.
func NewBinding(idx *docsearch.Index) *Binding {
	b := &Binding{
		index:    idx,
		sections: make(map[string]bool),
		notify:   make(chan struct{}, 1),
	}
	for _, e := range idx.Entries() {
		if b.active == "" {
			b.active = e.SectionID
		}
		b.sections[e.SectionID] = true
	}
	return b
}

// Start delivers queued messages to sender until ctx is done.
func (b *Binding) Start(ctx context.Context, sender Sender) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.notify:
			}
			for _, msg := range b.drain() {
				sender.Send(msg)
			}
		}
	}()
}

// ActiveSection returns the ID of the section currently shown.
func (b *Binding) ActiveSection() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func (b *Binding) send(msg tea.Msg) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *Binding) drain() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.queue
	b.queue = nil
	return msgs
}

// Show implements docsearch.ResultsPanel.
func (b *Binding) Show(results []docsearch.ScoredResult) {
	b.send(resultsMsg{results: slices.Clone(results)})
}

// ShowEmpty implements docsearch.ResultsPanel.
func (b *Binding) ShowEmpty() {
	b.send(emptyMsg{})
}

// Hide implements docsearch.ResultsPanel.
func (b *Binding) Hide() {
	b.send(hideMsg{})
}

// ActivateSection implements docsearch.Navigator.
func (b *Binding) ActivateSection(sectionID string) error {
	if !b.sections[sectionID] {
		return docsearch.Errorf(docsearch.ENOTFOUND, "section %q not found", sectionID)
	}
	b.mu.Lock()
	b.active = sectionID
	b.mu.Unlock()
	b.send(activateMsg{sectionID: sectionID})
	return nil
}

// ScrollIntoView implements docsearch.Navigator. The heading must belong to
// the active section.
func (b *Binding) ScrollIntoView(headingID string) error {
	e, ok := b.index.Lookup(headingID)
	if !ok {
		return docsearch.Errorf(docsearch.ENOTFOUND, "heading %q not found", headingID)
	}
	if e.SectionID != b.ActiveSection() {
		return docsearch.Errorf(docsearch.EINVALID, "heading %q is hidden", headingID)
	}
	b.send(scrollMsg{id: headingID})
	return nil
}

// Highlight implements docsearch.Navigator.
func (b *Binding) Highlight(headingID string) error {
	if _, ok := b.index.Lookup(headingID); !ok {
		return docsearch.Errorf(docsearch.ENOTFOUND, "heading %q not found", headingID)
	}
	b.send(highlightMsg{id: headingID})
	return nil
}

// ClearHighlight implements docsearch.Navigator.
func (b *Binding) ClearHighlight(headingID string) error {
	b.send(clearHighlightMsg{id: headingID})
	return nil
}
