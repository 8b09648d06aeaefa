package mock

import "github.com/fwojciec/docsearch"

var _ docsearch.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of docsearch.Navigator.
type Navigator struct {
	ActivateSectionFn func(sectionID string) error
	ScrollIntoViewFn  func(headingID string) error
	HighlightFn       func(headingID string) error
	ClearHighlightFn  func(headingID string) error
}

func (n *Navigator) ActivateSection(sectionID string) error {
	return n.ActivateSectionFn(sectionID)
}

func (n *Navigator) ScrollIntoView(headingID string) error {
	return n.ScrollIntoViewFn(headingID)
}

func (n *Navigator) Highlight(headingID string) error {
	return n.HighlightFn(headingID)
}

func (n *Navigator) ClearHighlight(headingID string) error {
	return n.ClearHighlightFn(headingID)
}

var _ docsearch.ResultsPanel = (*ResultsPanel)(nil)

// ResultsPanel is a mock implementation of docsearch.ResultsPanel.
type ResultsPanel struct {
	ShowFn      func(results []docsearch.ScoredResult)
	ShowEmptyFn func()
	HideFn      func()
}

func (p *ResultsPanel) Show(results []docsearch.ScoredResult) {
	p.ShowFn(results)
}

func (p *ResultsPanel) ShowEmpty() {
	p.ShowEmptyFn()
}

func (p *ResultsPanel) Hide() {
	p.HideFn()
}
