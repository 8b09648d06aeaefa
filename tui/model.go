package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goquery"
)

// previewLength bounds the content shown under the selected heading.
const previewLength = 240

// Model is the bubbletea model of the search screen: a search field, the
// results panel and a preview of the heading last navigated to.
type Model struct {
	session *docsearch.Session
	logger  *slog.Logger
	styles  Styles
	input   textinput.Model

	results []docsearch.ScoredResult
	visible bool
	empty   bool
	cursor  int

	section     string
	scrolled    string
	highlighted string
	status      string

	width    int
	quitting bool
}

// NewModel creates a Model driving session.
func NewModel(session *docsearch.Session, styles Styles, logger *slog.Logger) *Model {
	in := textinput.New()
	in.Placeholder = "Search documentation"
	in.Prompt = "/ "
	in.CharLimit = 200
	in.Focus()

	m := &Model{
		session: session,
		logger:  logger,
		styles:  styles,
		input:   in,
		width:   80,
	}
	if entries := session.Index().Entries(); len(entries) > 0 {
		m.section = entries[0].SectionID
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-6, 10)

	case resultsMsg:
		m.results = msg.results
		m.visible = true
		m.empty = false
		m.cursor = 0

	case emptyMsg:
		m.results = nil
		m.visible = true
		m.empty = true
		m.cursor = 0

	case hideMsg:
		m.visible = false

	case activateMsg:
		m.section = msg.sectionID
		m.scrolled = ""

	case scrollMsg:
		m.scrolled = msg.id

	case highlightMsg:
		m.highlighted = msg.id

	case clearHighlightMsg:
		if m.highlighted == msg.id {
			m.highlighted = ""
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		if !m.visible {
			m.quitting = true
			return m, tea.Quit
		}
		m.session.OnOutsideClick()
		return m, nil

	case tea.KeyUp, tea.KeyShiftTab:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown, tea.KeyTab:
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyEnter:
		if !m.visible || len(m.results) == 0 {
			return m, nil
		}
		id := m.results[m.cursor].ID
		m.status = ""
		if !m.session.OnSelect(id) {
			m.logger.Debug("select target missing", "id", id)
			m.status = "That heading is no longer available."
		}
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != prev {
		m.status = ""
		m.session.OnInput(v)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("docsearch"))
	if title := m.sectionTitle(); title != "" {
		b.WriteString(m.styles.Section.Render(" • " + title))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.visible {
		b.WriteString(m.renderPanel())
		b.WriteString("\n")
	}
	if preview := m.renderPreview(); preview != "" {
		b.WriteString(preview)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Dim.Render("↑/↓ move • enter open • esc close"))
	return b.String()
}

func (m *Model) renderPanel() string {
	var lines []string
	if m.empty {
		lines = append(lines, m.styles.Empty.Render(goquery.NoResultsMessage))
	}
	for i, r := range m.results {
		marker, style := "  ", m.styles.Item
		if i == m.cursor {
			marker, style = "> ", m.styles.Selected
		}
		lines = append(lines, marker+style.Render(r.Title)+"  "+m.styles.Section.Render(r.Section))
	}
	return m.styles.Panel.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPreview() string {
	if m.scrolled == "" {
		return ""
	}
	e, ok := m.session.Index().Lookup(m.scrolled)
	if !ok {
		return ""
	}

	title := fmt.Sprintf("%s %s", strings.Repeat("#", e.Level), e.Title)
	if m.highlighted == e.ID {
		title = m.styles.Highlight.Render(title)
	} else {
		title = m.styles.Header.Render(title)
	}
	return title + "\n" + m.styles.Item.Render(truncate(e.Content, previewLength))
}

func (m *Model) sectionTitle() string {
	for _, e := range m.session.Index().Entries() {
		if e.SectionID == m.section {
			return e.Section
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
