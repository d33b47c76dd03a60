package cli

import (
	"fmt"
	"io"
	"os"

	"remindr/internal/config"
	"remindr/internal/reminders/service"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string, svc service.ReminderService, cfg *config.Config) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "add", "a":
		return runAdd(cmdArgs, svc)
	case "list", "ls", "l":
		return runList(cmdArgs, svc)
	case "delete", "rm", "del":
		return runDelete(cmdArgs, svc)
	case "sort":
		return runSort(cmdArgs, svc)
	case "extend", "snooze":
		return runExtend(cmdArgs, svc, cfg)
	case "watch":
		return runWatch(cmdArgs, svc, cfg)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(stdout, `remindr - Terminal reminders that ring

Usage: remindr [flags] [command] [arguments]

Commands:
  add, a       Add a reminder
               remindr add -t 07:00 -T "Wake up" -d "Get out of bed"

  list, ls, l  List reminders
               remindr list               # in stored order
               remindr list -q coffee     # fuzzy search

  delete, rm   Delete a reminder
               remindr delete <id>        # by id or id prefix (4+ chars)
               remindr delete --title T   # every reminder titled T

  sort         Reorder the stored reminders once
               remindr sort time|title

  extend       Move a reminder to now + offset
               remindr extend <id> [--by 10m]

  watch        Ring alarms without the TUI

  help         Show this help message

Flags:
  -c, --config <path>    Config file (default ~/.config/remindr/config.yaml)
  -s, --store <path>     Store file, or directory for the badger backend
      --backend <name>   file or badger
      --extend <dur>     Extend offset (default 5m)
      --sound <cmd>      Command that plays the alarm sound

Running remindr without a command launches the interactive TUI.`)
}
