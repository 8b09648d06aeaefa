package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/docsearch"
)

// Styles holds the lipgloss styles used by Model.
type Styles struct {
	Header    lipgloss.Style
	Section   lipgloss.Style
	Selected  lipgloss.Style
	Item      lipgloss.Style
	Dim       lipgloss.Style
	Empty     lipgloss.Style
	Highlight lipgloss.Style
	Panel     lipgloss.Style
	Status    lipgloss.Style
}

// ThemeStyles returns styles matching the site theme.
func ThemeStyles(theme docsearch.Theme) Styles {
	accent, text, dim := lipgloss.Color("81"), lipgloss.Color("255"), lipgloss.Color("243")
	if theme == docsearch.ThemeLight {
		accent, text, dim = lipgloss.Color("25"), lipgloss.Color("235"), lipgloss.Color("246")
	}
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Section:   lipgloss.NewStyle().Foreground(dim),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Item:      lipgloss.NewStyle().Foreground(text),
		Dim:       lipgloss.NewStyle().Foreground(dim),
		Empty:     lipgloss.NewStyle().Italic(true).Foreground(dim),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// NoColorStyles returns unstyled components for terminals without color.
func NoColorStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle(),
		Section:   lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle(),
		Item:      lipgloss.NewStyle(),
		Dim:       lipgloss.NewStyle(),
		Empty:     lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle().Reverse(true),
		Panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
		Status:    lipgloss.NewStyle(),
	}
}
