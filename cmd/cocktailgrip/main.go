package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"cocktailgrip/internal/cocktaildb"
	"cocktailgrip/internal/config"
	"cocktailgrip/internal/eventbus"
	"cocktailgrip/internal/favorites"
	"cocktailgrip/internal/logger"
	"cocktailgrip/internal/search"
	"cocktailgrip/internal/storage"
	"cocktailgrip/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run wires the application and returns the process exit code. Deferred
// cleanup runs on every path.
func run(args []string) int {
	// Parse command line arguments
	var configPath string
	var debug bool
	flags := flag.NewFlagSet("cocktailgrip", flag.ContinueOnError)
	flags.StringVar(&configPath, "config", "", "Path to the config file")
	flags.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flags.BoolVar(&debug, "debug", false, "Log at debug level")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Remaining args form the initial query
	initialQuery := strings.Join(flags.Args(), " ")

	// Load configuration
	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	} else {
		configSvc = config.NewConfigService()
	}
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	// Set up logging
	log, closeLog := setupLogger(cfg, debug)
	defer closeLog()
	log.Info().Str("config", configSvc.Path()).Msg("config loaded")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New(log)
	defer bus.Close()

	// Open durable storage and the two state containers
	kv, err := storage.OpenFileStore(cfg.StoragePath, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to open storage")
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		return 1
	}
	client := cocktaildb.NewClient(cfg.APIBaseURL, cfg.Timeout(), log)
	searchStore := search.NewStore(client, bus, log)

	// Subscribe to events before the favorites store publishes its load event
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSearchStarted,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventSearchCleared,
		eventbus.EventFavoritesLoaded,
		eventbus.EventFavoritesChanged,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	favoritesStore := favorites.New(kv, bus, log)

	// Create UI model
	pager := ui.NewOvPager()
	uiModel := ui.NewModel(ctx, cfg, searchStore, favoritesStore, pager, log, ui.Options{
		InitialQuery: initialQuery,
		ShowReady:    ui.E2EMode(),
	})

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	pager.SetProgram(p)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	log.Info().Msg("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("error running program")
		fmt.Printf("Error running program: %v\n", err)
		return 1
	}
	log.Info().Msg("UI exited normally")
	return 0
}

// setupLogger opens the configured log file. The terminal belongs to the UI,
// so without a log file nothing is logged.
func setupLogger(cfg *config.Config, debug bool) (zerolog.Logger, func()) {
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	if cfg.LogFile == "" {
		return logger.Nop(), func() {}
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		return logger.Nop(), func() {}
	}

	var out io.Writer = logFile
	if debug {
		return logger.NewConsole(out, level), func() { logFile.Close() }
	}
	return logger.New(out, level), func() { logFile.Close() }
}
