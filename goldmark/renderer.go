// Package goldmark renders Markdown documents into single-page documentation
// HTML: one content section per top-level heading, with navigation links and
// a search container, ready for the goquery indexer.
package goldmark

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fwojciec/docsearch"
	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	xhtml "golang.org/x/net/html"
)

// Renderer converts Markdown to a documentation page.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a new Renderer with GitHub Flavored Markdown enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

type section struct {
	id    string
	title string
	body  bytes.Buffer
	open  bool // a doc-block div is open
}

// Render converts Markdown source into page HTML. Content before the first
// level-one heading becomes an untitled introduction section.
func (r *Renderer) Render(source []byte) (string, error) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	var sections []*section
	ids := make(map[string]int)
	cur := func() *section {
		if len(sections) == 0 {
			sections = append(sections, &section{id: uniqueID(ids, "introduction")})
		}
		return sections[len(sections)-1]
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if h.Level == 1 {
				if len(sections) > 0 {
					closeBlock(cur())
				}
				title := nodeText(h, source)
				base := slug.Make(title)
				if base == "" {
					base = "section-" + strconv.Itoa(len(sections)+1)
				}
				sections = append(sections, &section{id: uniqueID(ids, base), title: title})
			} else {
				closeBlock(cur())
			}
			s := cur()
			s.body.WriteString(`<div class="doc-block">`)
			s.open = true
		}

		if err := r.md.Renderer().Render(&cur().body, source, n); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
	}
	if len(sections) > 0 {
		closeBlock(cur())
	}

	return page(sections), nil
}

func closeBlock(s *section) {
	if s.open {
		s.body.WriteString("</div>\n")
		s.open = false
	}
}

func page(sections []*section) string {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html data-theme=\"" + string(docsearch.DefaultTheme) + "\">\n<head><meta charset=\"utf-8\"></head>\n<body>\n")
	b.WriteString("<nav id=\"sidebar-nav\">\n")
	for _, s := range sections {
		if s.title == "" {
			continue
		}
		fmt.Fprintf(&b, "<a class=\"nav-link\" data-section=\"%s\" href=\"#%s\">%s</a>\n",
			xhtml.EscapeString(s.id), xhtml.EscapeString(s.id), xhtml.EscapeString(s.title))
	}
	b.WriteString("</nav>\n")
	b.WriteString("<div class=\"search-container\"><input id=\"search-bar\" type=\"search\"><div id=\"search-results\"></div></div>\n")
	b.WriteString("<main id=\"main-content\">\n")
	for i, s := range sections {
		class := "content-section"
		if i == 0 {
			class += " active"
		}
		fmt.Fprintf(&b, "<section class=\"%s\" id=\"%s\">\n", class, xhtml.EscapeString(s.id))
		b.Write(s.body.Bytes())
		b.WriteString("</section>\n")
	}
	b.WriteString("</main>\n</body>\n</html>\n")
	return b.String()
}

func uniqueID(ids map[string]int, base string) string {
	ids[base]++
	if n := ids[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}

// nodeText concatenates the text segments under n.
func nodeText(n ast.Node, source []byte) string {
	var b bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
