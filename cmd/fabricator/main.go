package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/fabricator/pkg/core"
	"github.com/germanamz/fabricator/pkg/display"
)

// errInitialize marks a startup failure reported by the core.
var errInitialize = errors.New("initialize")

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 && os.Args[1] == "init" {
		initCmd := flag.NewFlagSet("init", flag.ExitOnError)
		initCmd.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: fabricator init [flags]\n\nWrite a default configuration file.\n\nFlags:\n")
			initCmd.PrintDefaults()
		}
		path := initCmd.String("config", "fabricator.yaml", "path of the configuration file to write")
		interactive := initCmd.Bool("interactive", false, "fill in the configuration with an interactive form")
		force := initCmd.Bool("force", false, "overwrite an existing file")
		_ = initCmd.Parse(os.Args[2:])

		if err := runInit(*path, *interactive, *force); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fabricator [flags]\n       fabricator init [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  init    Write a default configuration file\n")
	}

	configPath := flag.String("config", "", "path to configuration file (default: fabricator.yaml if present)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	verbose := flag.Bool("verbose", false, "write the diagnostic log to stderr")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *verbose); err != nil {
		if errors.Is(err, errInitialize) {
			fmt.Fprintf(os.Stderr, "Failed to initialize Fabricator system!\nerror: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log, verbose, os.Stderr)
	if err != nil {
		return err
	}

	tick, err := cfg.Tick()
	if err != nil {
		return err
	}

	banner, err := cfg.Banner()
	if err != nil {
		return err
	}

	term := display.NewTerminal(os.Stdout, display.WithColor(cfg.Color))

	fab := core.New(core.Options{
		Display:     term,
		Input:       os.Stdin,
		Log:         log,
		Prompt:      cfg.Prompt,
		Tick:        tick,
		Policy:      cfg.StartupPolicy,
		BannerStyle: banner,
		Disabled:    cfg.Components.Disabled,
		Prepare:     term.Prepare,
	})
	defer func() { _ = fab.Shutdown() }()

	if err := fab.Initialize(); err != nil {
		return fmt.Errorf("%w: %w", errInitialize, err)
	}

	return fab.Run(ctx)
}
