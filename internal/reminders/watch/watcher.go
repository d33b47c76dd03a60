package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"remindr/internal/logs"
)

// DefaultDebounce batches the write+rename bursts a single save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports when the store file changes on disk, e.g. because
// `remindr add` ran while the TUI or `remindr watch` is open.
//
// The parent directory is watched rather than the file itself, since saves
// replace the file through a rename.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
}

// New starts watching the directory of path.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: DefaultDebounce,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes delivers one signal per debounced burst of changes. Signals are
// coalesced: a slow reader sees at most one pending signal.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes filesystem events until ctx is done, then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logs.Logger.Printf("Store watcher error: %v", err)

		case <-timer.C:
			w.notify()
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
		// a signal is already pending
	}
}
