package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClockLayout is the HH:MM (24h) shape reminder times are stored in.
const ClockLayout = "15:04"

// Reminder is a persisted time + title pair that rings at Time.
type Reminder struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Draft is a reminder being composed in a form. It is never persisted.
type Draft struct {
	Time        string `validate:"required"`
	Title       string `validate:"required,min=5"`
	Description string `validate:"required,min=10"`
}

// NewReminder builds a Reminder from a draft and assigns it a fresh ID.
func NewReminder(d Draft) Reminder {
	return Reminder{
		ID:          NewID(),
		Time:        d.Time,
		Title:       d.Title,
		Description: d.Description,
	}
}

// NewID returns a new reminder identifier.
func NewID() string {
	return uuid.NewString()
}

// ShortID is the prefix shown in listings.
func (r Reminder) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}

func (r Reminder) String() string {
	return fmt.Sprintf("%s %s", r.Time, r.Title)
}

// ClockString formats t as HH:MM in t's location.
func ClockString(t time.Time) string {
	return t.Format(ClockLayout)
}

// ParseClock checks that s is a valid HH:MM time and returns it normalized
// (e.g. "7:05" becomes "07:05").
func ParseClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return ClockString(t), nil
}
