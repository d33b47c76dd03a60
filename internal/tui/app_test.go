package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"remindr/internal/alarm"
	"remindr/internal/config"
	"remindr/internal/reminders/data"
	"remindr/internal/reminders/service"
	"remindr/internal/reminders/storage"
	"remindr/internal/sound"
	"remindr/internal/tui/messages"
	reminderview "remindr/internal/tui/reminders"
)

func newTestApp(t *testing.T, drafts ...data.Draft) (AppModel, service.ReminderService) {
	t.Helper()
	svc := service.NewReminderService(storage.NewFileSlot(filepath.Join(t.TempDir(), "store.json")), language.Und)
	for _, d := range drafts {
		if _, err := svc.Add(d); err != nil {
			t.Fatal(err)
		}
	}
	cfg := &config.Config{
		Backend:      config.BackendFile,
		ExtendOffset: 5 * time.Minute,
		TickInterval: time.Second,
	}
	session := alarm.NewSession(svc, sound.Nop{}, cfg.ExtendOffset)
	m := NewAppModel(cfg, svc, session, nil)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return model.(AppModel), svc
}

func at(hour, min int) time.Time {
	return time.Date(2026, 10, 19, hour, min, 0, 0, time.Local)
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	return model.(AppModel), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var wakeUp = data.Draft{Time: "07:00", Title: "Wake up", Description: "Get out of bed"}

func TestTick_OpensAlert(t *testing.T) {
	m, _ := newTestApp(t, wakeUp)

	m, cmd := update(t, m, messages.TickMsg{Time: at(6, 59)})
	if _, ok := m.Alert(); ok {
		t.Error("no alert expected before 07:00")
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0)})
	alert, ok := m.Alert()
	if !ok {
		t.Fatal("expected alert at 07:00")
	}
	if alert.Reminder().Title != "Wake up" {
		t.Errorf("unexpected reminder %+v", alert.Reminder())
	}
}

func TestAlert_Close(t *testing.T) {
	m, svc := newTestApp(t, wakeUp)
	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0)})

	m, cmd := update(t, m, key("c"))
	m, _ = update(t, m, cmd())
	if _, ok := m.Alert(); ok {
		t.Error("alert should be gone")
	}
	if len(svc.List()) != 1 || svc.List()[0].Time != "07:00" {
		t.Error("close must not touch the store")
	}

	// Same minute: the dismissed reminder stays quiet.
	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0).Add(30 * time.Second)})
	if _, ok := m.Alert(); ok {
		t.Error("dismissed reminder should not re-ring in the same minute")
	}
}

func TestAlert_Extend(t *testing.T) {
	m, svc := newTestApp(t, wakeUp)
	m.now = func() time.Time { return at(7, 0) }
	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0)})

	m, cmd := update(t, m, key("e"))
	m, _ = update(t, m, cmd())
	if got := svc.List()[0].Time; got != "07:05" {
		t.Errorf("expected 07:05, got %s", got)
	}
	if got := m.listView.Visible()[0].Time; got != "07:05" {
		t.Errorf("list should show the new time, got %s", got)
	}
}

func TestAlert_Delete(t *testing.T) {
	m, svc := newTestApp(t, wakeUp)
	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0)})

	m, cmd := update(t, m, key("d"))
	m, _ = update(t, m, cmd())
	if len(svc.List()) != 0 {
		t.Error("delete should remove the reminder")
	}
	if len(m.listView.Visible()) != 0 {
		t.Error("list should be empty")
	}
}

func TestAlert_CapturesKeys(t *testing.T) {
	m, _ := newTestApp(t, wakeUp)
	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0)})

	_, cmd := update(t, m, key("q"))
	if cmd != nil {
		t.Error("q should not quit while an alarm rings")
	}
}

func TestAlert_QueuedAnswersApplyOnce(t *testing.T) {
	m, svc := newTestApp(t, wakeUp)
	m.now = func() time.Time { return at(7, 0) }
	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0)})

	// Both keys reach the alert before either answer is delivered.
	m, extend := update(t, m, key("e"))
	m, del := update(t, m, key("d"))
	m, _ = update(t, m, extend())
	m, _ = update(t, m, del())

	if _, ok := m.Alert(); ok {
		t.Error("alert should be gone")
	}
	list := svc.List()
	if len(list) != 1 || list[0].Time != "07:05" {
		t.Errorf("expected only the extend to apply, got %v", list)
	}
}

func TestAlert_StaleAnswerIgnored(t *testing.T) {
	m, svc := newTestApp(t, wakeUp)
	m, _ = update(t, m, messages.TickMsg{Time: at(7, 0)})

	m, _ = update(t, m, reminderview.AlertActionMsg{Action: reminderview.AlertDelete, ID: "someone-else"})
	if _, ok := m.Alert(); !ok {
		t.Error("an answer for another reminder must not close the alert")
	}
	if len(svc.List()) != 1 {
		t.Error("an answer for another reminder must not delete")
	}
}

func TestSubmitDraft(t *testing.T) {
	m, svc := newTestApp(t)
	m, _ = update(t, m, key("n"))
	if m.CurrentView() != messages.ViewForm {
		t.Fatal("n should open the form")
	}

	m, _ = update(t, m, messages.SubmitDraftMsg{Draft: wakeUp})
	if m.CurrentView() != messages.ViewList {
		t.Error("submit should return to the list")
	}
	if len(svc.List()) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(svc.List()))
	}
	if m.formView.Draft() != (data.Draft{}) {
		t.Error("form should be cleared after submit")
	}
}

func TestSortAndDeleteMessages(t *testing.T) {
	m, svc := newTestApp(t,
		wakeUp,
		data.Draft{Time: "06:00", Title: "Alpha run", Description: "Five kilometers"},
	)

	m, _ = update(t, m, messages.SortRemindersMsg{Key: data.SortByTime})
	if svc.List()[0].Time != "06:00" {
		t.Errorf("expected 06:00 first, got %v", svc.List())
	}

	id := svc.List()[0].ID
	m, _ = update(t, m, messages.DeleteReminderMsg{ID: id})
	if len(m.listView.Visible()) != 1 {
		t.Errorf("expected 1 visible reminder, got %d", len(m.listView.Visible()))
	}
}

func TestStoreChanged_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := &config.Config{ExtendOffset: 5 * time.Minute, TickInterval: time.Second}
	svc := service.NewReminderService(storage.NewFileSlot(path), language.Und)
	m := NewAppModel(cfg, svc, alarm.NewSession(svc, sound.Nop{}, cfg.ExtendOffset), nil)

	// another process writing the same file
	other := service.NewReminderService(storage.NewFileSlot(path), language.Und)
	if _, err := other.Add(wakeUp); err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, messages.StoreChangedMsg{})
	if len(m.listView.Visible()) != 1 {
		t.Errorf("expected reload to show 1 reminder, got %d", len(m.listView.Visible()))
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestApp(t)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
