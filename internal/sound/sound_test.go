package sound

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the bell goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestBell_RingsUntilStopped(t *testing.T) {
	var out syncBuffer
	b := NewBell(&out, 5*time.Millisecond)

	if err := b.Play(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if err := b.Stop(); err != nil {
		t.Fatal(err)
	}

	rings := strings.Count(out.String(), "\a")
	if rings < 2 {
		t.Errorf("expected the bell to repeat, got %d rings", rings)
	}

	time.Sleep(20 * time.Millisecond)
	if after := strings.Count(out.String(), "\a"); after != rings {
		t.Errorf("bell kept ringing after stop: %d -> %d", rings, after)
	}
}

func TestBell_StopWithoutPlay(t *testing.T) {
	b := NewBell(&syncBuffer{}, time.Millisecond)
	if err := b.Stop(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCommand_StopKillsLongRunningSound(t *testing.T) {
	c := NewCommand("sleep 30")
	if err := c.Play(); err != nil {
		t.Skipf("cannot run sh: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Stop() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("stop: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not kill the sound command")
	}
}

func TestNew_SelectsPlayers(t *testing.T) {
	if _, ok := New("", false, &syncBuffer{}).(Nop); !ok {
		t.Error("expected Nop with no bell and no command")
	}
	if _, ok := New("", true, &syncBuffer{}).(*Bell); !ok {
		t.Error("expected Bell")
	}
	if _, ok := New("true", false, &syncBuffer{}).(*Command); !ok {
		t.Error("expected Command")
	}
	if m, ok := New("true", true, &syncBuffer{}).(Multi); !ok || len(m) != 2 {
		t.Error("expected Multi of two players")
	}
}
