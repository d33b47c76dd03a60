package theme

import "github.com/charmbracelet/lipgloss"

// Palette sticks to ANSI 0-15 plus one 256-color surface so it follows the
// terminal's own colors.
var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary       = lipgloss.Color("4")   // blue
	Secondary     = lipgloss.Color("6")   // cyan
	Accent        = lipgloss.Color("5")   // magenta
	Success       = lipgloss.Color("2")   // green
	Warning       = lipgloss.Color("3")   // yellow
	Danger        = lipgloss.Color("1")   // red
	Surface       = lipgloss.Color("236") // dark bg
	Border        = lipgloss.Color("8")
	BorderFocused = lipgloss.Color("4")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor     = lipgloss.NewStyle().Bold(true).Foreground(Success)
	SelectedBg = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)

	Clock = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Label = lipgloss.NewStyle().Foreground(Accent)
)

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	ModalHelp  = lipgloss.NewStyle().Foreground(TextMuted)

	// AlarmBox frames the ringing alert; it is louder than ModalBox on purpose.
	AlarmBox = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Danger).
			Padding(1, 2)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	InputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
	InputBoxFocused = InputBox.BorderForeground(BorderFocused)
)
