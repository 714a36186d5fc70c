package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/realmcore/render"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusCombat = lipgloss.NewStyle().
				Background(lipgloss.Color("52")).
				Foreground(lipgloss.Color("252")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlain = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleItems = lipgloss.NewStyle().Bold(true)

	// kindStyles maps each rendered line kind to its style. Kinds without an
	// entry use stylePlain.
	kindStyles = map[render.Kind]lipgloss.Style{
		render.Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		render.Description: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		render.Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		render.Exits:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		render.Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		render.Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		render.Combat:      lipgloss.NewStyle().Foreground(lipgloss.Color("209")),
		render.Victory:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		render.Defeat:      lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		render.Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		render.System:      lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		render.Quit:        lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		render.Diagram:     lipgloss.NewStyle().Foreground(lipgloss.Color("151")),
	}
)

// renderLine applies the style for a line kind. System lines are bracketed
// and item listings get their names in bold.
func renderLine(text string, kind render.Kind) string {
	switch kind {
	case render.Input:
		return stylePlayerInput.Render(text)
	case render.System:
		return kindStyles[kind].Render("[" + text + "]")
	case render.Plain:
		const prefix = "Items here: "
		if strings.HasPrefix(text, prefix) {
			return stylePlain.Render(prefix) + styleItems.Render(text[len(prefix):])
		}
	}
	if s, ok := kindStyles[kind]; ok {
		return s.Render(text)
	}
	return stylePlain.Render(text)
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(indent + word)
			lineLen = len(indent) + wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}
