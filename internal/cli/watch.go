package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"remindr/internal/alarm"
	"remindr/internal/config"
	"remindr/internal/logs"
	"remindr/internal/markdown"
	"remindr/internal/reminders/data"
	"remindr/internal/reminders/service"
	"remindr/internal/reminders/watch"
	"remindr/internal/sound"
)

// runWatch rings alarms from the terminal without the TUI. While an alarm
// rings, typing c, e or d (then enter) closes, extends or deletes it.
func runWatch(args []string, svc service.ReminderService, cfg *config.Config) int {
	fs := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.BoolP("verbose", "v", false, "Also write log lines to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *verbose {
		logs.SetOutput(stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := sound.New(cfg.SoundCommand, cfg.Bell, os.Stderr)
	session := alarm.NewSession(svc, player, cfg.ExtendOffset)
	defer session.Close()

	clock := alarm.NewClock(svc, session, cfg.TickInterval)
	clock.OnTrigger = func(r data.Reminder) {
		fmt.Fprintf(stdout, "\n⏰ %s  %s\n", r.Time, r.Title)
		if r.Description != "" {
			fmt.Fprintf(stdout, "   %s\n", markdown.Plain(r.Description))
		}
		fmt.Fprintln(stdout, "   [c] close  [e] extend  [d] delete")
	}

	var changes <-chan struct{}
	if cfg.Backend == config.BackendFile {
		w, err := watch.New(cfg.StorePath)
		if err != nil {
			logs.Logger.Printf("Not watching store for changes: %v", err)
		} else {
			go w.Run(ctx)
			changes = w.Changes()
		}
	}

	lines := make(chan string)
	go readLines(ctx, lines)

	go clock.Start(ctx)

	fmt.Fprintf(stdout, "Watching %d reminder(s). Press ctrl+c to stop.\n", len(svc.List()))
	return watchLoop(ctx, svc, session, changes, lines)
}

func watchLoop(ctx context.Context, svc service.ReminderService, session *alarm.Session, changes <-chan struct{}, lines <-chan string) int {
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(stdout, "Stopped.")
			return 0

		case <-changes:
			if err := svc.Reload(); err != nil {
				logs.Logger.Printf("Error reloading reminders: %v", err)
				continue
			}
			logs.Logger.Printf("Reloaded %d reminder(s)", len(svc.List()))

		case line, ok := <-lines:
			if !ok {
				// stdin closed: keep ringing alarms, stop reading input
				lines = nil
				continue
			}
			handleAlertInput(strings.TrimSpace(line), session)
		}
	}
}

func handleAlertInput(input string, session *alarm.Session) {
	if input == "" {
		return
	}

	active, _ := session.Active()
	var err error
	switch strings.ToLower(input) {
	case "c", "close":
		err = session.Close()
		if err == nil {
			fmt.Fprintf(stdout, "Closed: %s\n", active)
		}
	case "e", "extend":
		var newTime string
		newTime, err = session.Extend(now())
		if err == nil {
			fmt.Fprintf(stdout, "Extended: %s -> %s\n", active.Title, newTime)
		}
	case "d", "delete":
		err = session.Delete()
		if err == nil {
			fmt.Fprintf(stdout, "Deleted: %s\n", active)
		}
	default:
		fmt.Fprintln(stderr, "Unknown action, use c, e or d")
		return
	}

	if errors.Is(err, alarm.ErrNotRinging) {
		fmt.Fprintln(stderr, "Nothing is ringing.")
	} else if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
}

// readLines forwards stdin lines until EOF or ctx is done. A Scan already
// blocked on the terminal returns at process exit.
func readLines(ctx context.Context, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		select {
		case out <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}
