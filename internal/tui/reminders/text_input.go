package reminders

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remindr/internal/reminders/data"
	"remindr/internal/tui/theme"
)

// TextInputModel is a single-line prompt with a validator, shown as a modal.
type TextInputModel struct {
	Input     textinput.Model
	Prompt    string
	Validator func(string) error
	Error     string
	Width     int
}

// TextInputResultMsg is sent when input is confirmed or cancelled
type TextInputResultMsg struct {
	Value     string
	Cancelled bool
}

func NewTextInput(prompt, placeholder string, validator func(string) error) *TextInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Focus()
	return &TextInputModel{
		Input:     ti,
		Prompt:    prompt,
		Validator: validator,
	}
}

// NewClockInput creates an input for an HH:MM time.
func NewClockInput(prompt, value string) *TextInputModel {
	m := NewTextInput(prompt, "HH:MM", ValidateClock)
	m.Input.CharLimit = 5
	m.Input.SetValue(value)
	m.Input.CursorEnd()
	return m
}

func (m *TextInputModel) Update(msg tea.Msg) (*TextInputModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if m.Validator != nil {
				if err := m.Validator(m.Input.Value()); err != nil {
					m.Error = err.Error()
					return m, nil
				}
			}
			value := m.Input.Value()
			return m, func() tea.Msg { return TextInputResultMsg{Value: value} }
		case "esc":
			return m, func() tea.Msg { return TextInputResultMsg{Cancelled: true} }
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.Error = ""
	return m, cmd
}

func (m *TextInputModel) View() string {
	content := theme.Label.Render(m.Prompt+": ") + m.Input.View() + "\n"
	if m.Error != "" {
		content += theme.Error.Render(m.Error) + "\n"
	}
	content += theme.HelpHint.Render("[enter] confirm  [esc] cancel")

	return theme.InputBoxFocused.Width(m.Width).Render(content)
}

// Value returns the current input value
func (m *TextInputModel) Value() string {
	return m.Input.Value()
}

// SetWidth sets both the outer box and inner input widths
func (m *TextInputModel) SetWidth(w int) {
	// border (2) and padding (2)
	m.Width = w - 4
	m.Input.Width = m.Width - lipgloss.Width(m.Prompt+": ")
}

// ValidateClock accepts HH:MM in 24h time.
func ValidateClock(s string) error {
	_, err := data.ParseClock(s)
	return err
}
