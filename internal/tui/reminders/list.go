package reminders

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remindr/internal/markdown"
	"remindr/internal/reminders/data"
	"remindr/internal/tui/messages"
	"remindr/internal/tui/shared"
	"remindr/internal/tui/theme"
)

const titleColumnWidth = 24

// ListModel shows the collection in stored order, filtered by the fuzzy
// search query. Mutations are requested through messages and applied by the
// root model.
type ListModel struct {
	reminders []data.Reminder
	visible   []data.Reminder
	cursor    int

	search    textinput.Model
	searching bool

	confirm       *ConfirmationModal
	pendingDelete data.Reminder

	timeInput *TextInputModel
	editing   data.Reminder

	width  int
	height int
}

func NewListModel(reminders []data.Reminder) ListModel {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 64

	m := ListModel{search: search}
	m.SetReminders(reminders)
	return m
}

// SetReminders replaces the data and keeps the cursor in range.
func (m *ListModel) SetReminders(reminders []data.Reminder) {
	m.reminders = reminders
	m.applySearch()
}

func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(width-4, 10)
}

// Visible returns the reminders currently shown, in display order.
func (m ListModel) Visible() []data.Reminder {
	return m.visible
}

// Selected returns the reminder under the cursor.
func (m ListModel) Selected() (data.Reminder, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return data.Reminder{}, false
	}
	return m.visible[m.cursor], true
}

// IsInModalState reports whether the list wants every key (search, confirm,
// time edit).
func (m ListModel) IsInModalState() bool {
	return m.searching || m.confirm != nil || m.timeInput != nil
}

func (m *ListModel) applySearch() {
	m.visible = data.Search(m.reminders, strings.TrimSpace(m.search.Value()))
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ConfirmationResultMsg:
		target := m.pendingDelete
		m.confirm = nil
		m.pendingDelete = data.Reminder{}
		if !msg.Confirmed || target.ID == "" {
			return m, nil
		}
		return m, func() tea.Msg { return messages.DeleteReminderMsg{ID: target.ID} }

	case TextInputResultMsg:
		target := m.editing
		m.timeInput = nil
		m.editing = data.Reminder{}
		if msg.Cancelled || target.ID == "" {
			return m, nil
		}
		clock, err := data.ParseClock(msg.Value)
		if err != nil || clock == target.Time {
			return m, nil
		}
		return m, func() tea.Msg { return messages.UpdateTimeMsg{ID: target.ID, Time: clock} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.timeInput != nil {
		var cmd tea.Cmd
		m.timeInput, cmd = m.timeInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ListModel) handleKey(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	if m.confirm != nil {
		return m, m.confirm.Update(msg)
	}
	if m.timeInput != nil {
		var cmd tea.Cmd
		m.timeInput, cmd = m.timeInput.Update(msg)
		return m, cmd
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.visible)-1, 0)
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applySearch()
		}
	case "d", "x":
		if r, ok := m.Selected(); ok {
			m.pendingDelete = r
			m.confirm = NewConfirmationModal("Delete reminder?", r.String(), m.modalWidth())
		}
	case "e":
		if r, ok := m.Selected(); ok {
			m.editing = r
			m.timeInput = NewClockInput("New time", r.Time)
			m.timeInput.SetWidth(m.modalWidth())
			return m, textinput.Blink
		}
	case "s":
		return m, sortCmd(data.SortByTime)
	case "S":
		return m, sortCmd(data.SortByTitle)
	}
	return m, nil
}

func (m ListModel) handleSearchKey(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.applySearch()
	return m, cmd
}

func sortCmd(key data.SortKey) tea.Cmd {
	return func() tea.Msg { return messages.SortRemindersMsg{Key: key} }
}

func (m ListModel) modalWidth() int {
	if m.width == 0 {
		return 40
	}
	return min(max(m.width/2, 30), m.width-2)
}

func (m ListModel) View() string {
	if m.confirm != nil {
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	}
	if m.timeInput != nil {
		return shared.Overlay(m.timeInput.View(), m.width, m.height)
	}

	header := theme.Title.Render("Reminders")
	if q := m.search.Value(); q != "" || m.searching {
		header += "  " + m.search.View()
	}

	if len(m.reminders) == 0 {
		empty := theme.Muted.Render("No reminders yet. Press n to add one.")
		return header + "\n" + shared.CenterContent(empty, max(m.height-1, 1))
	}
	if len(m.visible) == 0 {
		return header + "\n\n" + theme.Muted.Render("No reminder matches the search.")
	}

	var rows []string
	for i, r := range m.visible {
		rows = append(rows, m.renderRow(r, i == m.cursor))
	}
	footer := theme.Muted.Render(fmt.Sprintf("%d of %d", len(m.visible), len(m.reminders)))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return shared.PadToHeight(header+"\n\n"+body, max(m.height-1, 1)) + "\n" + footer
}

func (m ListModel) renderRow(r data.Reminder, selected bool) string {
	marker := "  "
	if selected {
		marker = theme.Cursor.Render("> ")
	}

	title := markdown.Truncate(r.Title, titleColumnWidth)
	title += strings.Repeat(" ", max(titleColumnWidth-lipgloss.Width(title), 0))

	descWidth := m.width - titleColumnWidth - 12
	desc := ""
	if descWidth > 3 {
		desc = markdown.Truncate(markdown.Plain(r.Description), descWidth)
	}

	row := theme.Clock.Render(r.Time) + "  " + title + "  " + theme.Muted.Render(desc)
	if selected {
		row = theme.SelectedBg.Render(row)
	}
	return marker + row
}
