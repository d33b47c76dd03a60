package messages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"remindr/internal/reminders/data"
)

// ViewType represents the different screens of the application
type ViewType int

const (
	ViewList ViewType = iota
	ViewForm
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// TickMsg drives the alarm clock once per configured interval.
type TickMsg struct {
	Time time.Time
}

// StoreChangedMsg signals the store was written by another process.
type StoreChangedMsg struct{}

// SubmitDraftMsg carries a validated draft from the form.
type SubmitDraftMsg struct {
	Draft data.Draft
}

// DeleteReminderMsg requests removing a reminder.
type DeleteReminderMsg struct {
	ID string
}

// UpdateTimeMsg requests moving a reminder to a new HH:MM time.
type UpdateTimeMsg struct {
	ID   string
	Time string
}

// SortRemindersMsg requests a one-shot reorder of the collection.
type SortRemindersMsg struct {
	Key data.SortKey
}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}

// Tick schedules the next TickMsg.
func Tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// WaitForChange blocks on changes and reports the next one. It returns nil
// when there is nothing to wait on.
func WaitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}
