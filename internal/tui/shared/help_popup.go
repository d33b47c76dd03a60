package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"remindr/internal/tui/theme"
)

// HelpBind is a single key and what it does.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection groups related binds under a heading.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var (
	helpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	helpDescStyle = lipgloss.NewStyle().Foreground(theme.Text)
	helpBoxStyle  = theme.ModalBox
)

// RenderHelpPopup renders the sections in a box centered in width x height.
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Title.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			b.WriteString("  " + helpKeyStyle.Width(12).Render(bind.Key) + helpDescStyle.Render(bind.Desc) + "\n")
		}
	}
	b.WriteString("\n" + theme.HelpHint.Render("Press any key to close"))

	return Overlay(helpBoxStyle.Render(b.String()), width, height)
}
