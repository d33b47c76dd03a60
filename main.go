package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"remindr/internal/alarm"
	"remindr/internal/cli"
	"remindr/internal/config"
	"remindr/internal/logs"
	"remindr/internal/reminders/data"
	"remindr/internal/reminders/service"
	"remindr/internal/reminders/storage"
	"remindr/internal/reminders/watch"
	"remindr/internal/sound"
	"remindr/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configFlag := pflag.StringP("config", "c", "", "Config file path")
	storeFlag := pflag.StringP("store", "s", "", "Store file, or directory for the badger backend")
	backendFlag := pflag.String("backend", "", "Storage backend: file or badger")
	extendFlag := pflag.Duration("extend", 0, "Extend offset for a ringing alarm (e.g. 5m)")
	soundFlag := pflag.String("sound", "", "Command that plays the alarm sound")
	// Everything after the command name belongs to the command.
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	cfg, err := config.Load(config.CLIFlags{
		ConfigPath:   *configFlag,
		StorePath:    *storeFlag,
		Backend:      *backendFlag,
		ExtendOffset: *extendFlag,
		SoundCommand: *soundFlag,
	})
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	if err := logs.Initialize(cfg.DataDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	slot, err := storage.Open(cfg.Backend, cfg.StorePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open store: %v\n", err)
		return 1
	}
	defer slot.Close()

	svc := service.NewReminderService(slot, data.ParseLocale(cfg.Locale))

	if args := pflag.Args(); len(args) > 0 {
		return cli.Run(args, svc, cfg)
	}

	logs.Logger.Println("Starting app in TUI mode")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	// The bell goes to stderr so it never lands in the rendered frame.
	session := alarm.NewSession(svc, sound.New(cfg.SoundCommand, cfg.Bell, os.Stderr), cfg.ExtendOffset)
	defer session.Close()

	p := tea.NewProgram(tui.NewAppModel(cfg, svc, session, changes), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		return 1
	}
	return 0
}
