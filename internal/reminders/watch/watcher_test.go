package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.debounce = 20 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Run(ctx)
	return w
}

func TestWatcher_SignalsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	w := startWatcher(t, path)

	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change signal")
	}
}

func TestWatcher_SignalsOnRenameIntoPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	w := startWatcher(t, path)

	tmp := filepath.Join(dir, ".store-tmp.json")
	if err := os.WriteFile(tmp, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change signal")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, filepath.Join(dir, "store.json"))

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
		t.Fatal("unexpected change signal for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}
