package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/germanamz/fabricator/pkg/config"
	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// loadConfig returns the configuration to run with. An explicit path must
// exist; otherwise config.DefaultPath is used when present and the built-in
// defaults when not.
func loadConfig(explicit string) (config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}

	if _, err := os.Stat(config.DefaultPath); err != nil {
		return config.Default(), nil
	}

	return config.Load(config.DefaultPath)
}

// newLogger builds the diagnostic logger. It writes to w only when verbose
// is set.
func newLogger(cfg config.LogConfig, verbose bool, w io.Writer) (*slog.Logger, error) {
	if !verbose {
		return slog.New(slog.DiscardHandler), nil
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
