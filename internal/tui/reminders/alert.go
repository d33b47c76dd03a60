package reminders

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"remindr/internal/markdown"
	"remindr/internal/reminders/data"
	"remindr/internal/tui/theme"
)

// AlertAction is what the user chose to do with a ringing alarm.
type AlertAction int

const (
	AlertClose AlertAction = iota
	AlertExtend
	AlertDelete
)

// AlertActionMsg is sent when the user answers the ringing alert. ID names
// the reminder the answer was given for.
type AlertActionMsg struct {
	Action AlertAction
	ID     string
}

// AlertModel is the modal shown while an alarm rings. It has no timeout: it
// stays until the user closes, extends or deletes.
type AlertModel struct {
	reminder data.Reminder
	extendBy time.Duration
	width    int
	body     string
}

func NewAlertModel(r data.Reminder, extendBy time.Duration, width int) AlertModel {
	m := AlertModel{reminder: r, extendBy: extendBy}
	m.SetWidth(width)
	return m
}

// Reminder returns the reminder that is ringing.
func (m AlertModel) Reminder() data.Reminder {
	return m.reminder
}

// SetWidth re-renders the description for the new width.
func (m *AlertModel) SetWidth(width int) {
	m.width = min(max(width-10, 30), 72)
	m.body = strings.TrimSpace(markdown.Render(m.reminder.Description, m.width-6))
}

func (m AlertModel) Update(msg tea.KeyMsg) tea.Cmd {
	var action AlertAction
	switch msg.String() {
	case "c", "esc", "enter":
		action = AlertClose
	case "e":
		action = AlertExtend
	case "d":
		action = AlertDelete
	default:
		return nil
	}
	id := m.reminder.ID
	return func() tea.Msg { return AlertActionMsg{Action: action, ID: id} }
}

func (m AlertModel) View() string {
	var b strings.Builder
	b.WriteString(theme.Error.Render("⏰ "+m.reminder.Time) + "  " + theme.ModalTitle.Render(m.reminder.Title) + "\n")
	if m.body != "" {
		b.WriteString("\n" + m.body + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Ok.Render("[c]") + " Close  ")
	b.WriteString(theme.Warn.Render("[e]") + fmt.Sprintf(" Extend %s  ", formatOffset(m.extendBy)))
	b.WriteString(theme.Error.Render("[d]") + " Delete")

	return theme.AlarmBox.Width(m.width).Render(b.String())
}

// formatOffset renders whole hours and minutes without the trailing zero
// units Duration.String adds.
func formatOffset(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return d.String()
	}
}
