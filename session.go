package docsearch

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default session timings.
const (
	DefaultDebounceDelay     = 250 * time.Millisecond
	DefaultSettleDelay       = 100 * time.Millisecond
	DefaultHighlightDuration = 2500 * time.Millisecond
)

// ResultsPanel displays search results.
type ResultsPanel interface {
	// Show displays a non-empty result list.
	Show(results []ScoredResult)

	// ShowEmpty displays the explicit "no results" state.
	ShowEmpty()

	// Hide dismisses the panel.
	Hide()
}

// Navigator activates sections and moves the viewport to headings.
type Navigator interface {
	// ActivateSection makes the section visible and every other section hidden.
	// Returns ENOTFOUND if the section does not exist.
	ActivateSection(sectionID string) error

	// ScrollIntoView scrolls the heading into view.
	// Returns ENOTFOUND if the heading does not exist and EINVALID if it is hidden.
	ScrollIntoView(headingID string) error

	// Highlight applies the transient highlight to the heading.
	Highlight(headingID string) error

	// ClearHighlight removes the highlight from the heading.
	ClearHighlight(headingID string) error
}

// SessionConfig holds the timings used by a Session.
type SessionConfig struct {
	DebounceDelay     time.Duration
	SettleDelay       time.Duration
	HighlightDuration time.Duration
}

// DefaultSessionConfig returns the default session timings.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		DebounceDelay:     DefaultDebounceDelay,
		SettleDelay:       DefaultSettleDelay,
		HighlightDuration: DefaultHighlightDuration,
	}
}

// Session owns the state of one page load: the cached index, the pending
// debounced search, and the capabilities of the UI binding. Handlers and
// timer callbacks are serialised, so a binding may call them from any
// goroutine.
type Session struct {
	ID string

	mu        sync.Mutex
	engine    *Engine
	panel     ResultsPanel
	nav       Navigator
	scheduler Scheduler
	cfg       SessionConfig
	debouncer *Debouncer

	query       string
	results     []ScoredResult
	settle      Timer
	clear       Timer
	highlighted string
	closed      bool

	// Timer callbacks carry the sequence current when they were scheduled
	// and do nothing if it has moved on since.
	settleSeq uint64
	clearSeq  uint64
}

// NewSession returns a Session searching idx and driving panel and nav.
func NewSession(idx *Index, panel ResultsPanel, nav Navigator, scheduler Scheduler, cfg SessionConfig) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		engine:    NewEngine(idx),
		panel:     panel,
		nav:       nav,
		scheduler: scheduler,
		cfg:       cfg,
	}
	s.debouncer = NewDebouncer(scheduler, cfg.DebounceDelay, s.search)
	return s
}

// Index returns the session's cached index.
func (s *Session) Index() *Index {
	return s.engine.Index()
}

// OnInput handles a change of the search field. The search runs once input
// has been quiet for the debounce delay, using the latest value.
func (s *Session) OnInput(value string) {
	s.debouncer.Trigger(value)
}

// Results returns the query and results last displayed.
func (s *Session) Results() (string, []ScoredResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query, s.results
}

func (s *Session) search(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	q := ParseQuery(value)
	s.query = q.Raw
	if !q.Valid() {
		s.results = nil
		s.panel.Hide()
		return
	}

	s.results = s.engine.Search(value)
	if len(s.results) == 0 {
		s.panel.ShowEmpty()
		return
	}
	s.panel.Show(s.results)
}

// OnSelect navigates to the heading of the selected result: it activates the
// enclosing section, hides the panel, and once layout has settled scrolls the
// heading into view and highlights it for the highlight duration.
// It reports false, doing nothing, if the target no longer exists.
func (s *Session) OnSelect(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	entry, ok := s.engine.Index().Lookup(id)
	if !ok || entry.SectionID == "" {
		return false
	}
	if err := s.nav.ActivateSection(entry.SectionID); err != nil {
		return false
	}
	s.panel.Hide()

	s.stopSettle()
	seq := s.settleSeq
	s.settle = s.scheduler.AfterFunc(s.cfg.SettleDelay, func() {
		s.reveal(id, seq)
	})
	return true
}

func (s *Session) reveal(id string, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.settleSeq {
		return
	}
	s.settle = nil
	if err := s.nav.ScrollIntoView(id); err != nil {
		return
	}

	s.clearHighlight()
	if err := s.nav.Highlight(id); err != nil {
		return
	}
	s.highlighted = id
	clearSeq := s.clearSeq
	s.clear = s.scheduler.AfterFunc(s.cfg.HighlightDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if clearSeq == s.clearSeq {
			s.clear = nil
			s.clearHighlight()
		}
	})
}

// stopSettle cancels the pending reveal. Callers must hold s.mu.
func (s *Session) stopSettle() {
	s.settleSeq++
	if s.settle != nil {
		s.settle.Stop()
		s.settle = nil
	}
}

// clearHighlight removes the current highlight. Callers must hold s.mu.
func (s *Session) clearHighlight() {
	s.clearSeq++
	if s.clear != nil {
		s.clear.Stop()
		s.clear = nil
	}
	if s.highlighted != "" {
		_ = s.nav.ClearHighlight(s.highlighted)
		s.highlighted = ""
	}
}

// OnOutsideClick dismisses the results panel.
func (s *Session) OnOutsideClick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.panel.Hide()
}

// Close stops pending timers and clears any highlight. Handlers are no-ops
// after Close.
func (s *Session) Close() {
	s.debouncer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopSettle()
	s.clearHighlight()
}
