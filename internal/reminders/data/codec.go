package data

import (
	"encoding/json"
	"fmt"
)

// EncodeReminders serializes the full collection.
func EncodeReminders(reminders []Reminder) ([]byte, error) {
	if reminders == nil {
		reminders = []Reminder{}
	}
	b, err := json.Marshal(reminders)
	if err != nil {
		return nil, fmt.Errorf("encode reminders: %w", err)
	}
	return b, nil
}

// DecodeReminders parses a serialized collection. Entries written without an
// ID get one assigned; empty input yields an empty collection.
func DecodeReminders(b []byte) ([]Reminder, error) {
	reminders := []Reminder{}
	if len(b) == 0 {
		return reminders, nil
	}
	if err := json.Unmarshal(b, &reminders); err != nil {
		return []Reminder{}, fmt.Errorf("decode reminders: %w", err)
	}
	if reminders == nil {
		// literal "null"
		reminders = []Reminder{}
	}
	for i := range reminders {
		if reminders[i].ID == "" {
			reminders[i].ID = NewID()
		}
	}
	return reminders, nil
}
