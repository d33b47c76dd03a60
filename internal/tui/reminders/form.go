package reminders

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"remindr/internal/reminders/data"
	"remindr/internal/tui/messages"
	"remindr/internal/tui/theme"
)

var fieldLabels = map[string]string{
	data.FieldTime:        "Time",
	data.FieldTitle:       "Title",
	data.FieldDescription: "Description",
}

// FormModel is the "new reminder" form. Errors are recomputed on every
// change but only shown for fields the user has touched, until a submit
// attempt touches them all.
type FormModel struct {
	inputs  []textinput.Model
	focus   int
	touched map[string]bool
	errs    data.ValidationErrors
	width   int
}

func NewFormModel() FormModel {
	inputs := make([]textinput.Model, len(data.Fields))
	for i, field := range data.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		switch field {
		case data.FieldTime:
			ti.Placeholder = "HH:MM"
			ti.CharLimit = 5
		case data.FieldTitle:
			ti.Placeholder = "Wake up"
			ti.CharLimit = 100
		case data.FieldDescription:
			ti.Placeholder = "Get out of bed, *now*"
			ti.CharLimit = 500
		}
		inputs[i] = ti
	}
	inputs[0].Focus()

	m := FormModel{
		inputs:  inputs,
		touched: map[string]bool{},
	}
	m.errs = validateDraft(m.Draft())
	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Draft returns the current field values. Title and description are kept
// as typed, so the length rules count what the user entered.
func (m FormModel) Draft() data.Draft {
	return data.Draft{
		Time:        strings.TrimSpace(m.inputs[0].Value()),
		Title:       m.inputs[1].Value(),
		Description: m.inputs[2].Value(),
	}
}

// Errors returns the errors of the current draft, shown or not.
func (m FormModel) Errors() data.ValidationErrors {
	return m.errs
}

// Valid reports whether the draft can be submitted.
func (m FormModel) Valid() bool {
	return m.errs.Valid()
}

// Touched reports whether field has been edited or left.
func (m FormModel) Touched(field string) bool {
	return m.touched[field]
}

// Reset clears the form after a successful submit.
func (m *FormModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.touched = map[string]bool{}
	m.errs = validateDraft(m.Draft())
}

func (m *FormModel) SetWidth(w int) {
	m.width = w
	for i := range m.inputs {
		m.inputs[i].Width = max(w-8, 10)
	}
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "esc":
		return m, messages.SwitchView(messages.ViewList)
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m, m.moveFocus(1)
		}
		return m, m.submit()
	case "ctrl+s":
		return m, m.submit()
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.touched[data.Fields[m.focus]] = true
		m.errs = validateDraft(m.Draft())
	}
	return m, cmd
}

func (m *FormModel) moveFocus(delta int) tea.Cmd {
	m.touched[data.Fields[m.focus]] = true
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *FormModel) submit() tea.Cmd {
	for _, field := range data.Fields {
		m.touched[field] = true
	}
	m.errs = validateDraft(m.Draft())
	if !m.errs.Valid() {
		return nil
	}

	draft := m.Draft()
	// validateDraft already checked the shape
	draft.Time, _ = data.ParseClock(draft.Time)
	return func() tea.Msg { return messages.SubmitDraftMsg{Draft: draft} }
}

// validateDraft adds the HH:MM shape check on top of the field rules.
func validateDraft(d data.Draft) data.ValidationErrors {
	errs := data.Validate(d)
	if d.Time != "" {
		if _, err := data.ParseClock(d.Time); err != nil {
			errs[data.FieldTime] = "Time must be HH:MM (24h)"
		}
	}
	return errs
}

func (m FormModel) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("New reminder") + "\n\n")

	for i, field := range data.Fields {
		box := theme.InputBox
		if i == m.focus {
			box = theme.InputBoxFocused
		}
		if m.width > 0 {
			box = box.Width(max(m.width-4, 14))
		}
		b.WriteString(theme.Label.Render(fieldLabels[field]) + "\n")
		b.WriteString(box.Render(m.inputs[i].View()) + "\n")
		if msg, ok := m.errs[field]; ok && m.touched[field] {
			b.WriteString(theme.Error.Render("  "+msg) + "\n")
		}
		b.WriteString("\n")
	}
	if msg, ok := m.errs[data.FieldInternal]; ok {
		b.WriteString(theme.Error.Render(msg) + "\n\n")
	}

	save := theme.Muted.Render("[ctrl+s] Save")
	if m.Valid() {
		save = theme.Ok.Render("[ctrl+s] Save")
	}
	b.WriteString(save + "  " + theme.HelpHint.Render("[tab] next field  [esc] back"))
	return b.String()
}
