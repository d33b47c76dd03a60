package sound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"remindr/internal/alarm"
)

// DefaultBellInterval is how often the bell repeats while ringing.
const DefaultBellInterval = 2 * time.Second

// New builds the player for the configured sound command and bell flag. With
// neither configured the alarm is silent.
func New(command string, bell bool, out io.Writer) alarm.Player {
	var players []alarm.Player
	if bell {
		players = append(players, NewBell(out, DefaultBellInterval))
	}
	if command != "" {
		players = append(players, NewCommand(command))
	}
	switch len(players) {
	case 0:
		return Nop{}
	case 1:
		return players[0]
	default:
		return Multi(players)
	}
}

// Nop plays nothing.
type Nop struct{}

func (Nop) Play() error { return nil }
func (Nop) Stop() error { return nil }

// Multi plays through several players at once.
type Multi []alarm.Player

func (m Multi) Play() error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.Play())
	}
	return errors.Join(errs...)
}

func (m Multi) Stop() error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.Stop())
	}
	return errors.Join(errs...)
}

// Bell rings the terminal bell repeatedly until stopped.
type Bell struct {
	mu       sync.Mutex
	out      io.Writer
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewBell(out io.Writer, interval time.Duration) *Bell {
	return &Bell{out: out, interval: interval}
}

func (b *Bell) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return nil
	}
	if _, err := io.WriteString(b.out, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})
	go b.loop(ctx, b.done)
	return nil
}

func (b *Bell) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.mu.Lock()
			io.WriteString(b.out, "\a")
			b.mu.Unlock()
		}
	}
}

func (b *Bell) Stop() error {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

// Command plays a sound by running an external program, e.g.
// "paplay /usr/share/sounds/freedesktop/stereo/alarm-clock-elapsed.oga".
// Stop kills the program if it is still running.
type Command struct {
	mu      sync.Mutex
	command string
	cmd     *exec.Cmd
	done    chan struct{}
}

func NewCommand(command string) *Command {
	return &Command{command: command}
}

func (c *Command) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd != nil {
		return nil
	}
	cmd := exec.Command("sh", "-c", c.command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start sound command: %w", err)
	}
	done := make(chan struct{})
	c.cmd = cmd
	c.done = done
	go func() {
		cmd.Wait()
		close(done)
	}()
	return nil
}

func (c *Command) Stop() error {
	c.mu.Lock()
	cmd, done := c.cmd, c.done
	c.cmd, c.done = nil, nil
	c.mu.Unlock()

	if cmd == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	default:
	}
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop sound command: %w", err)
	}
	<-done
	return nil
}
