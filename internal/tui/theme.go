package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// ColorTheme names the lipgloss styles the renderer composes panes with.
// Grounded on the teacher's src/ansi.go color-pair vocabulary, replaced
// wholesale with lipgloss.Style since the concrete backend no longer
// manages raw terminal color pairs itself.
type ColorTheme struct {
	Name string

	Border        lipgloss.Style
	BorderFocused lipgloss.Style
	Prompt        lipgloss.Style
	Match         lipgloss.Style
	Selection     lipgloss.Style
	StatusBar     lipgloss.Style
	Cursor        lipgloss.Style
}

// NoColor reports whether the NO_COLOR convention (spec.md non-goals
// still require honoring ambient terminal conventions) disables styling.
func NoColor() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set
}

// DefaultTheme returns the built-in "default" theme. Named themes beyond
// this one are a cable/config extension point left for future themes
// files; only the default is wired here.
func DefaultTheme(name string) ColorTheme {
	if NoColor() {
		return ColorTheme{Name: name}
	}
	return ColorTheme{
		Name:          name,
		Border:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		BorderFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Match:         lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("236")),
		StatusBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("235")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
	}
}
