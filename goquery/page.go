// Package goquery provides a headless model of the documentation page built
// on goquery: the heading indexer, section navigation, and the results panel.
package goquery

import (
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
	"golang.org/x/net/html"
)

// Selectors and classes of the page structure.
const (
	SectionSelector  = ".content-section"
	HeadingSelector  = "h1, h2, h3, h4"
	NavLinkSelector  = ".nav-link"
	ResultsSelector  = "#search-results"
	TabButtonSel     = ".os-tab-btn"
	TabContentSel    = ".os-instructions-content"
	ActiveClass      = "active"
	HighlightClass   = "search-highlight"
	NoResultsMessage = "No results found"
)

// Compile-time interface verification.
var (
	_ docsearch.Navigator    = (*Page)(nil)
	_ docsearch.ResultsPanel = (*Page)(nil)
)

// Page is a parsed documentation page. It is the DOM that the indexer reads
// and that navigation and the results panel mutate. Methods are safe for
// concurrent use.
type Page struct {
	mu       sync.Mutex
	doc      *goquery.Document
	scrolled string
}

// NewPage parses HTML from r.
func NewPage(r io.Reader) (*Page, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{doc: goquery.NewDocumentFromNode(node)}, nil
}

// ParsePage parses an HTML string.
func ParsePage(s string) (*Page, error) {
	return NewPage(strings.NewReader(s))
}

// HTML renders the current state of the page.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Html()
}

// ActivateSection shows the section with the given ID, hides every other
// section, and marks the nav links pointing at it active.
func (p *Page) ActivateSection(sectionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	target := p.doc.Find(SectionSelector).FilterFunction(hasID(sectionID))
	if target.Length() == 0 {
		return docsearch.Errorf(docsearch.ENOTFOUND, "section %q not found", sectionID)
	}

	p.doc.Find(SectionSelector).RemoveClass(ActiveClass)
	p.doc.Find(NavLinkSelector).RemoveClass(ActiveClass)
	target.First().AddClass(ActiveClass)
	p.doc.Find(NavLinkSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("data-section")
		return v == sectionID
	}).AddClass(ActiveClass)
	p.scrolled = ""
	return nil
}

// ActivateFragment handles URL hash navigation such as "#install".
// Sections without a nav link can be reached this way too.
func (p *Page) ActivateFragment(fragment string) (string, error) {
	id := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if id == "" {
		return "", docsearch.Errorf(docsearch.EINVALID, "empty fragment")
	}
	return id, p.ActivateSection(id)
}

// ActiveSection returns the ID of the visible section, or "" if none is.
func (p *Page) ActiveSection() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, _ := p.doc.Find(SectionSelector + "." + ActiveClass).First().Attr("id")
	return id
}

// ScrollIntoView records the heading as the scroll target. The heading must
// be inside the active section.
func (p *Page) ScrollIntoView(headingID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, err := p.element(headingID)
	if err != nil {
		return err
	}
	if !el.Closest(SectionSelector).HasClass(ActiveClass) {
		return docsearch.Errorf(docsearch.EINVALID, "heading %q is hidden", headingID)
	}
	p.scrolled = headingID
	return nil
}

// Scrolled returns the ID of the heading last scrolled into view.
func (p *Page) Scrolled() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrolled
}

// Highlight adds the highlight class to the heading.
func (p *Page) Highlight(headingID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, err := p.element(headingID)
	if err != nil {
		return err
	}
	el.AddClass(HighlightClass)
	return nil
}

// ClearHighlight removes the highlight class from the heading.
func (p *Page) ClearHighlight(headingID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, err := p.element(headingID)
	if err != nil {
		return err
	}
	el.RemoveClass(HighlightClass)
	return nil
}

// Highlighted returns the IDs of highlighted elements in document order.
func (p *Page) Highlighted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var ids []string
	p.doc.Find("." + HighlightClass).Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok {
			ids = append(ids, id)
		}
	})
	return ids
}

// Show renders results into the results container and makes it visible.
func (p *Page) Show(results []docsearch.ScoredResult) {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(`<div class="search-result-item" data-target="`)
		b.WriteString(html.EscapeString(r.ID))
		b.WriteString(`"><div class="search-result-title">`)
		b.WriteString(html.EscapeString(r.Title))
		b.WriteString(`</div><div class="search-result-section">`)
		b.WriteString(html.EscapeString(r.Section))
		b.WriteString(`</div></div>`)
	}
	p.render(b.String())
}

// ShowEmpty renders the no-results message and makes the container visible.
func (p *Page) ShowEmpty() {
	p.render(`<div class="search-result-item search-empty">` + NoResultsMessage + `</div>`)
}

// Hide makes the results container invisible.
func (p *Page) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.Find(ResultsSelector).RemoveClass(ActiveClass)
}

// PanelVisible reports whether the results container is visible.
func (p *Page) PanelVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Find(ResultsSelector).HasClass(ActiveClass)
}

// PanelItems returns the data-target of each rendered result.
func (p *Page) PanelItems() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var targets []string
	p.doc.Find(ResultsSelector + " .search-result-item[data-target]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("data-target")
		targets = append(targets, v)
	})
	return targets
}

func (p *Page) render(inner string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.Find(ResultsSelector).SetHtml(inner).AddClass(ActiveClass)
}

// ActivatePlatformTab shows the installation instructions for platform.
func (p *Page) ActivatePlatformTab(platform docsearch.Platform) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, sel := range []string{TabButtonSel, TabContentSel} {
		p.doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if os, _ := s.Attr("data-os"); os == string(platform) {
				s.AddClass(ActiveClass)
			} else {
				s.RemoveClass(ActiveClass)
			}
		})
	}
}

// SetTheme sets the data-theme attribute of the root element.
func (p *Page) SetTheme(theme docsearch.Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.Find("html").SetAttr("data-theme", string(theme))
}

func (p *Page) element(id string) (*goquery.Selection, error) {
	el := p.doc.Find("[id]").FilterFunction(hasID(id)).First()
	if el.Length() == 0 {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "element %q not found", id)
	}
	return el, nil
}

func hasID(id string) func(int, *goquery.Selection) bool {
	return func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr("id")
		return ok && v == id
	}
}
