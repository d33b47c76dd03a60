package service

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"remindr/internal/logs"
	"remindr/internal/reminders/data"
	"remindr/internal/reminders/storage"
)

var (
	ErrNotFound  = errors.New("reminder not found")
	ErrAmbiguous = errors.New("reminder id is ambiguous")
)

// ReminderService defines the interface for reminder operations. Every
// mutation rewrites the full collection to the backing slot.
type ReminderService interface {
	List() []data.Reminder
	Get(id string) (data.Reminder, error)
	Find(idPrefix string) (data.Reminder, error)
	Add(draft data.Draft) (data.Reminder, error)
	Remove(id string) error
	RemoveByTitle(title string) (int, error)
	UpdateTime(id, clock string) error
	Sort(key data.SortKey) error
	Reload() error
}

type reminderServiceImpl struct {
	mu        sync.RWMutex
	slot      storage.Slot
	locale    language.Tag
	reminders []data.Reminder
}

// NewReminderService creates a service hydrated from slot. An unreadable or
// malformed slot is logged and treated as an empty collection.
func NewReminderService(slot storage.Slot, locale language.Tag) ReminderService {
	svc := &reminderServiceImpl{
		slot:      slot,
		locale:    locale,
		reminders: []data.Reminder{},
	}
	if err := svc.Reload(); err != nil {
		logs.Logger.Printf("Starting with no reminders: %v", err)
	}
	return svc
}

func (s *reminderServiceImpl) Reload() error {
	raw, err := s.slot.Get(storage.RemindersKey)
	if errors.Is(err, storage.ErrNotFound) {
		s.set([]data.Reminder{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("load reminders: %w", err)
	}

	reminders, err := data.DecodeReminders(raw)
	if err != nil {
		return fmt.Errorf("load reminders: %w", err)
	}
	s.set(reminders)
	return nil
}

func (s *reminderServiceImpl) set(reminders []data.Reminder) {
	s.mu.Lock()
	s.reminders = reminders
	s.mu.Unlock()
}

func (s *reminderServiceImpl) List() []data.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]data.Reminder, len(s.reminders))
	copy(result, s.reminders)
	return result
}

func (s *reminderServiceImpl) Get(id string) (data.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := data.FindReminder(s.reminders, id)
	if !ok {
		return data.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, nil
}

func (s *reminderServiceImpl) Find(idPrefix string) (data.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := data.MatchPrefix(s.reminders, idPrefix)
	switch len(matches) {
	case 0:
		return data.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, idPrefix)
	case 1:
		return matches[0], nil
	default:
		return data.Reminder{}, fmt.Errorf("%w: %q matches %d reminders", ErrAmbiguous, idPrefix, len(matches))
	}
}

func (s *reminderServiceImpl) Add(draft data.Draft) (data.Reminder, error) {
	if errs := data.Validate(draft); !errs.Valid() {
		return data.Reminder{}, errs
	}

	r := data.NewReminder(draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = data.AppendReminder(s.reminders, r)
	logs.Logger.Printf("Added reminder %s at %s", r.ID, r.Time)
	return r, s.persist()
}

func (s *reminderServiceImpl) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, ok := data.DeleteReminder(s.reminders, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.reminders = reminders
	logs.Logger.Printf("Removed reminder %s", id)
	return s.persist()
}

func (s *reminderServiceImpl) RemoveByTitle(title string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, n := data.DeleteByTitle(s.reminders, title)
	if n == 0 {
		return 0, nil
	}
	s.reminders = reminders
	logs.Logger.Printf("Removed %d reminder(s) titled %q", n, title)
	return n, s.persist()
}

func (s *reminderServiceImpl) UpdateTime(id, clock string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, ok := data.SetTime(s.reminders, id, clock)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.reminders = reminders
	logs.Logger.Printf("Moved reminder %s to %s", id, clock)
	return s.persist()
}

func (s *reminderServiceImpl) Sort(key data.SortKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = data.SortReminders(s.reminders, key, s.locale)
	return s.persist()
}

// persist must be called with s.mu held. The in-memory change stands even
// when the write fails.
func (s *reminderServiceImpl) persist() error {
	raw, err := data.EncodeReminders(s.reminders)
	if err != nil {
		logs.Logger.Printf("Error encoding reminders: %v", err)
		return err
	}
	if err := s.slot.Put(storage.RemindersKey, raw); err != nil {
		logs.Logger.Printf("Error saving reminders: %v", err)
		return fmt.Errorf("save reminders: %w", err)
	}
	return nil
}
