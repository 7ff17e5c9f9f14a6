package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/fabricator/pkg/config"
)

func runInit(path string, interactive, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	cfg := config.Default()

	if interactive {
		if err := runWizard(&cfg); err != nil {
			return err
		}
	}

	if err := writeConfig(path, cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)

	return nil
}

func writeConfig(path string, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func runWizard(cfg *config.Config) error {
	policy := string(cfg.StartupPolicy)

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Prompt").Value(&cfg.Prompt),
		huh.NewInput().Title("Tick interval (e.g. 100ms)").Value(&cfg.TickInterval).Validate(validateDuration),
		huh.NewSelect[string]().
			Title("When a component fails to start").
			Options(
				huh.NewOption("Keep going (lenient)", string(config.Lenient)),
				huh.NewOption("Abort startup (strict)", string(config.Strict)),
			).
			Value(&policy),
		huh.NewConfirm().Title("Use colour?").Value(&cfg.Color),
		huh.NewSelect[string]().
			Title("Diagnostic log level").
			Options(huh.NewOptions("debug", "info", "warn", "error")...).
			Value(&cfg.Log.Level),
	)).Run()
	if err != nil {
		return err
	}

	cfg.StartupPolicy = config.StartupPolicy(policy)

	return nil
}

func validateDuration(s string) error {
	c := config.Default()
	c.TickInterval = s
	_, err := c.Tick()
	return err
}
