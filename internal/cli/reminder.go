package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"remindr/internal/config"
	"remindr/internal/markdown"
	"remindr/internal/reminders/data"
	"remindr/internal/reminders/service"
)

const previewWidth = 40

func runAdd(args []string, svc service.ReminderService) int {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	clock := fs.StringP("time", "t", "", "Alarm time, HH:MM (24h)")
	title := fs.StringP("title", "T", "", "Alarm title")
	description := fs.StringP("description", "d", "", "Alarm description")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	draft := data.Draft{
		Time:        *clock,
		Title:       *title,
		Description: *description,
	}
	if draft.Time != "" {
		normalized, err := data.ParseClock(draft.Time)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		draft.Time = normalized
	}

	r, err := svc.Add(draft)
	var verrs data.ValidationErrors
	if errors.As(err, &verrs) {
		for _, field := range data.Fields {
			if msg, ok := verrs[field]; ok {
				fmt.Fprintf(stderr, "Error: %s\n", msg)
			}
		}
		if msg, ok := verrs[data.FieldInternal]; ok {
			fmt.Fprintf(stderr, "Error: %s\n", msg)
		}
		return 1
	}
	if err != nil {
		// The reminder is kept in memory only; tell the user it may be lost.
		fmt.Fprintf(stderr, "Warning: could not save reminder: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Added: %s\n", r)
	fmt.Fprintf(stdout, "ID: %s\n", r.ID)
	return 0
}

func runList(args []string, svc service.ReminderService) int {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	query := fs.StringP("query", "q", "", "Fuzzy search over time, title and description")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	reminders := data.Search(svc.List(), *query)
	if len(reminders) == 0 {
		fmt.Fprintln(stdout, "No reminders found.")
		return 0
	}

	for _, r := range reminders {
		printReminder(r)
	}

	fmt.Fprintf(stdout, "\n%d reminder(s)\n", len(reminders))
	return 0
}

func runDelete(args []string, svc service.ReminderService) int {
	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "Delete every reminder with this exact title")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *title != "" {
		n, err := svc.RemoveByTitle(*title)
		if err != nil {
			fmt.Fprintf(stderr, "Error deleting reminders: %v\n", err)
			return 1
		}
		if n == 0 {
			fmt.Fprintf(stderr, "Error: no reminder titled %q\n", *title)
			return 1
		}
		fmt.Fprintf(stdout, "Deleted %d reminder(s) titled %q\n", n, *title)
		return 0
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: reminder ID required")
		fmt.Fprintln(stderr, "Usage: remindr delete <id> | --title <title>")
		return 1
	}

	r, err := svc.Find(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := svc.Remove(r.ID); err != nil {
		fmt.Fprintf(stderr, "Error deleting reminder: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Deleted: %s\n", r)
	return 0
}

func runSort(args []string, svc service.ReminderService) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Error: sort key required")
		fmt.Fprintln(stderr, "Usage: remindr sort time|title")
		return 1
	}

	key, err := data.ParseSortKey(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := svc.Sort(key); err != nil {
		fmt.Fprintf(stderr, "Error sorting reminders: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Sorted by %s\n", key)
	return 0
}

func runExtend(args []string, svc service.ReminderService, cfg *config.Config) int {
	fs := pflag.NewFlagSet("extend", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	by := fs.Duration("by", cfg.ExtendOffset, "How far from now to move the reminder")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: reminder ID required")
		fmt.Fprintln(stderr, "Usage: remindr extend <id> [--by 5m]")
		return 1
	}
	if *by <= 0 {
		fmt.Fprintln(stderr, "Error: --by must be positive")
		return 1
	}

	r, err := svc.Find(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	newTime := data.ClockString(now().Add(*by))
	if err := svc.UpdateTime(r.ID, newTime); err != nil {
		fmt.Fprintf(stderr, "Error extending reminder: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Extended: %s -> %s\n", r, newTime)
	return 0
}

// now is swapped in tests.
var now = time.Now

func printReminder(r data.Reminder) {
	fmt.Fprintf(stdout, "[%s] %s  %s\n", r.ShortID(), r.Time, r.Title)
	if r.Description != "" {
		fmt.Fprintf(stdout, "           %s\n", markdown.Truncate(markdown.Plain(r.Description), previewWidth))
	}
}
