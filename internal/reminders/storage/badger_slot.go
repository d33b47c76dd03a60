package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"remindr/internal/logs"
)

// BadgerSlot stores each key as a badger entry.
type BadgerSlot struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a badger database in dir.
func OpenBadger(dir string) (*BadgerSlot, error) {
	if dir == "" {
		return nil, errors.New("path is required for badger storage")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return openBadger(badger.DefaultOptions(dir).WithSyncWrites(true))
}

// OpenBadgerInMemory opens a badger database that lives only in memory.
func OpenBadgerInMemory() (*BadgerSlot, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*BadgerSlot, error) {
	opts = opts.WithLogger(badgerLogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerSlot{db: db}, nil
}

func (s *BadgerSlot) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %q: %w", key, err)
	}
	return value, nil
}

func (s *BadgerSlot) Put(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger put %q: %w", key, err)
	}
	return nil
}

func (s *BadgerSlot) Close() error {
	return s.db.Close()
}

// badgerLogger forwards badger's warnings and errors to the app log and
// drops its chatty info/debug output.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logs.Logger.Printf("badger error: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logs.Logger.Printf("badger warning: "+format, args...)
}

func (badgerLogger) Infof(string, ...interface{}) {}

func (badgerLogger) Debugf(string, ...interface{}) {}
