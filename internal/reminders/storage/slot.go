package storage

import (
	"errors"
	"fmt"
)

// RemindersKey is the slot key the reminder collection lives under.
const RemindersKey = "reminders"

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Slot is a durable key-value store holding serialized values.
type Slot interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open returns the slot for backend ("file" or "badger") rooted at path.
func Open(backend, path string) (Slot, error) {
	switch backend {
	case "", "file":
		return NewFileSlot(path), nil
	case "badger":
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
