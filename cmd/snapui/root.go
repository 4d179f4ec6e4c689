// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"snapui/internal/ai"
	"snapui/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "snapui",
	Short: "Generate responsive UI components from a description",
	Long: `SnapUI sends a component description and a target stack to a hosted
language model and returns a single self-contained HTML document. Run
"snapui serve" for the web interface or "snapui generate" from a terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "snapui.yaml", "config file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig reads, validates and logs the configuration, and installs the
// process logger for its environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(newLogger(cfg.IsDev(), verbose))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	slog.Debug("configuration loaded",
		"env", cfg.App.Env,
		"addr", cfg.Addr(),
		"provider", cfg.AI.Provider,
		"valkey", cfg.ValkeyEnabled(),
	)
	return cfg, nil
}

// newRegistry builds the provider registry for cfg.
func newRegistry(cfg *config.Config) (*ai.Registry, error) {
	reg, err := ai.NewRegistry(cfg.AI.Provider, cfg.Providers())
	if err != nil {
		return nil, err
	}
	slog.Info("ai providers initialized",
		"active", reg.Name(),
		"available", reg.Available(),
	)
	return reg, nil
}
