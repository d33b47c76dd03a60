package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remindr/internal/alarm"
	"remindr/internal/config"
	"remindr/internal/logs"
	"remindr/internal/reminders/data"
	"remindr/internal/reminders/service"
	"remindr/internal/tui/messages"
	reminderview "remindr/internal/tui/reminders"
	"remindr/internal/tui/shared"
	"remindr/internal/tui/theme"
)

// AppModel is the root model: it owns the service, the alarm session and the
// clock, and dispatches everything else to the current child view.
type AppModel struct {
	cfg     *config.Config
	svc     service.ReminderService
	session *alarm.Session
	clock   *alarm.Clock
	changes <-chan struct{}

	currentView messages.ViewType
	listView    reminderview.ListModel
	formView    reminderview.FormModel
	alert       *reminderview.AlertModel

	status    string
	statusErr bool
	showHelp  bool
	width     int
	height    int
	ready     bool

	now func() time.Time
}

// NewAppModel creates the root model. changes, when not nil, reports writes
// to the store made by other processes.
func NewAppModel(cfg *config.Config, svc service.ReminderService, session *alarm.Session, changes <-chan struct{}) AppModel {
	if cfg.DefaultSort != "" {
		if key, err := data.ParseSortKey(cfg.DefaultSort); err == nil {
			if err := svc.Sort(key); err != nil {
				logs.Logger.Printf("Error applying default sort: %v", err)
			}
		}
	}

	return AppModel{
		cfg:         cfg,
		svc:         svc,
		session:     session,
		clock:       alarm.NewClock(svc, session, cfg.TickInterval),
		changes:     changes,
		currentView: messages.ViewList,
		listView:    reminderview.NewListModel(svc.List()),
		formView:    reminderview.NewFormModel(),
		now:         time.Now,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		messages.Tick(m.cfg.TickInterval),
		messages.WaitForChange(m.changes),
	)
}

// Alert returns the ringing alert, if any.
func (m AppModel) Alert() (reminderview.AlertModel, bool) {
	if m.alert == nil {
		return reminderview.AlertModel{}, false
	}
	return *m.alert, true
}

// CurrentView returns the screen being shown.
func (m AppModel) CurrentView() messages.ViewType {
	return m.currentView
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // status bar
		m.listView.SetSize(msg.Width, contentHeight)
		m.formView.SetWidth(msg.Width)
		if m.alert != nil {
			m.alert.SetWidth(msg.Width)
		}
		return m, nil

	case messages.TickMsg:
		if r, ok := m.clock.Check(msg.Time); ok {
			alert := reminderview.NewAlertModel(r, m.session.ExtendOffset(), m.width)
			m.alert = &alert
		}
		return m, messages.Tick(m.cfg.TickInterval)

	case messages.StoreChangedMsg:
		if err := m.svc.Reload(); err != nil {
			logs.Logger.Printf("Error reloading reminders: %v", err)
			m.setStatus("Could not reload reminders", true)
		} else {
			m.listView.SetReminders(m.svc.List())
		}
		return m, messages.WaitForChange(m.changes)

	case messages.SwitchViewMsg:
		m.currentView = msg.View
		if msg.View == messages.ViewForm {
			return m, m.formView.Init()
		}
		return m, nil

	case messages.SubmitDraftMsg:
		r, err := m.svc.Add(msg.Draft)
		var verrs data.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			// the form validates first; reaching this means the rules disagree
			m.setStatus(verrs.Error(), true)
			return m, nil
		case err != nil:
			m.setStatus("Added, but not saved: "+err.Error(), true)
		default:
			m.setStatus("Added "+r.String(), false)
		}
		m.formView.Reset()
		m.listView.SetReminders(m.svc.List())
		m.currentView = messages.ViewList
		return m, nil

	case messages.DeleteReminderMsg:
		if err := m.svc.Remove(msg.ID); err != nil {
			m.setStatus("Delete failed: "+err.Error(), true)
		} else {
			m.setStatus("Deleted", false)
		}
		m.listView.SetReminders(m.svc.List())
		return m, nil

	case messages.UpdateTimeMsg:
		if err := m.svc.UpdateTime(msg.ID, msg.Time); err != nil {
			m.setStatus("Update failed: "+err.Error(), true)
		} else {
			m.setStatus("Moved to "+msg.Time, false)
		}
		m.listView.SetReminders(m.svc.List())
		return m, nil

	case messages.SortRemindersMsg:
		if err := m.svc.Sort(msg.Key); err != nil {
			m.setStatus("Sort failed: "+err.Error(), true)
		} else {
			m.setStatus("Sorted by "+string(msg.Key), false)
		}
		m.listView.SetReminders(m.svc.List())
		return m, nil

	case reminderview.AlertActionMsg:
		m.handleAlertAction(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// A ringing alarm takes every key until answered.
		if m.alert != nil {
			return m, m.alert.Update(msg)
		}

		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.currentView == messages.ViewList && !m.listView.IsInModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "n", "a":
				m.currentView = messages.ViewForm
				return m, m.formView.Init()
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case messages.ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case messages.ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	}
	return m, cmd
}

// handleAlertAction drops answers that arrive after their alert is gone,
// e.g. a second key pressed before the first answer was delivered.
func (m *AppModel) handleAlertAction(msg reminderview.AlertActionMsg) {
	if m.alert == nil || m.alert.Reminder().ID != msg.ID {
		return
	}
	active := m.alert.Reminder()
	m.alert = nil

	var err error
	switch msg.Action {
	case reminderview.AlertClose:
		err = m.session.Close()
		if err == nil {
			m.setStatus("Dismissed "+active.Title, false)
		}
	case reminderview.AlertExtend:
		var newTime string
		newTime, err = m.session.Extend(m.now())
		if err == nil {
			m.setStatus(fmt.Sprintf("%s moved to %s", active.Title, newTime), false)
		}
	case reminderview.AlertDelete:
		err = m.session.Delete()
		if err == nil {
			m.setStatus("Deleted "+active.Title, false)
		}
	}

	if err != nil && !errors.Is(err, alarm.ErrNotRinging) {
		logs.Logger.Printf("Alarm action failed: %v", err)
		m.setStatus(err.Error(), true)
	}
	m.listView.SetReminders(m.svc.List())
}

func (m *AppModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.alert != nil {
		return shared.Overlay(m.alert.View(), m.width, m.height)
	}
	if m.showHelp {
		return shared.RenderHelpPopup(helpSections(), m.width, m.height)
	}

	var content, hints string
	switch m.currentView {
	case messages.ViewForm:
		content = m.formView.View()
		hints = "tab: next | ctrl+s: save | esc: back"
	default:
		content = m.listView.View()
		hints = "n: new | e: edit time | d: delete | s/S: sort | /: search | ?: help | q: quit"
	}

	statusText := theme.HelpHint.Render(hints)
	if m.status != "" {
		style := theme.Ok
		if m.statusErr {
			style = theme.Error
		}
		statusText = style.Render(m.status) + "  " + statusText
	}
	statusBar := theme.StatusBar.Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func helpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{
			Title: "Reminders",
			Binds: []shared.HelpBind{
				{Key: "j / k", Desc: "Move down / up"},
				{Key: "n", Desc: "New reminder"},
				{Key: "e", Desc: "Change time"},
				{Key: "d", Desc: "Delete"},
				{Key: "s", Desc: "Sort by time"},
				{Key: "S", Desc: "Sort by title"},
				{Key: "/", Desc: "Search"},
				{Key: "q", Desc: "Quit"},
			},
		},
		{
			Title: "Form",
			Binds: []shared.HelpBind{
				{Key: "tab / enter", Desc: "Next field"},
				{Key: "ctrl+s", Desc: "Save"},
				{Key: "esc", Desc: "Back to list"},
			},
		},
		{
			Title: "Ringing",
			Binds: []shared.HelpBind{
				{Key: "c / esc", Desc: "Close"},
				{Key: "e", Desc: "Extend"},
				{Key: "d", Desc: "Delete"},
			},
		},
	}
}
