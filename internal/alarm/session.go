package alarm

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"remindr/internal/logs"
	"remindr/internal/reminders/data"
)

// ErrNotRinging is returned by Close, Extend and Delete when no alarm is
// ringing.
var ErrNotRinging = errors.New("no alarm is ringing")

// State is the alert session state.
type State int

const (
	Idle State = iota
	Ringing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ringing:
		return "ringing"
	default:
		return "unknown"
	}
}

// Player is the sound device a session rings through.
type Player interface {
	Play() error
	Stop() error
}

// Reminders is the part of the reminder service the alarm needs.
type Reminders interface {
	List() []data.Reminder
	Remove(id string) error
	UpdateTime(id, clock string) error
}

// Session is the "an alarm is ringing" state. It owns the player: the sound
// starts when the session opens and stops on every way out of Ringing.
type Session struct {
	mu       sync.Mutex
	store    Reminders
	player   Player
	extendBy time.Duration
	state    State
	active   data.Reminder
}

// NewSession creates an idle session. extendBy is the snooze offset used by
// Extend.
func NewSession(store Reminders, player Player, extendBy time.Duration) *Session {
	return &Session{
		store:    store,
		player:   player,
		extendBy: extendBy,
		state:    Idle,
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ringing reports whether an alarm is active.
func (s *Session) Ringing() bool {
	return s.State() == Ringing
}

// Active returns the ringing reminder.
func (s *Session) Active() (data.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.state == Ringing
}

// ExtendOffset is the snooze offset applied by Extend.
func (s *Session) ExtendOffset() time.Duration {
	return s.extendBy
}

// Open moves Idle -> Ringing for r and starts the sound. It returns false,
// and does nothing, when a session is already ringing.
func (s *Session) Open(r data.Reminder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Ringing {
		return false
	}
	s.state = Ringing
	s.active = r
	logs.Logger.Printf("Alarm ringing: %s %q", r.Time, r.Title)
	if err := s.player.Play(); err != nil {
		logs.Logger.Printf("Failed to play alarm sound: %v", err)
	}
	return true
}

// Close stops the sound without touching the stored reminder.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ringing {
		return ErrNotRinging
	}
	s.finish()
	return nil
}

// Extend moves the ringing reminder to now + the extend offset and stops the
// sound. It returns the new HH:MM time. The session ends even if the store
// update fails.
func (s *Session) Extend(now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ringing {
		return "", ErrNotRinging
	}
	newTime := data.ClockString(now.Add(s.extendBy))
	id := s.active.ID
	s.finish()

	if err := s.store.UpdateTime(id, newTime); err != nil {
		return newTime, fmt.Errorf("extend reminder: %w", err)
	}
	return newTime, nil
}

// Delete removes the ringing reminder from the store and stops the sound.
func (s *Session) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ringing {
		return ErrNotRinging
	}
	id := s.active.ID
	s.finish()

	if err := s.store.Remove(id); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

// finish must be called with s.mu held.
func (s *Session) finish() {
	if err := s.player.Stop(); err != nil {
		logs.Logger.Printf("Failed to stop alarm sound: %v", err)
	}
	s.state = Idle
	s.active = data.Reminder{}
}
