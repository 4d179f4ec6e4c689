// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"snapui/internal/cache"
	"snapui/internal/config"
	"snapui/internal/generation"
	"snapui/internal/handlers"
	"snapui/internal/render"
	"snapui/internal/router"
	"snapui/internal/view"
)

// shutdownGrace bounds how long in-flight requests may run after a signal.
const shutdownGrace = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openStore returns the view store for cfg and a function releasing it.
func openStore(ctx context.Context, cfg *config.Config) (view.Store, func(), error) {
	if !cfg.ValkeyEnabled() {
		slog.Info("view state kept in memory", "ttl", cfg.View.TTL.String())
		mem := view.NewMemoryStore(cfg.View.TTL)
		return mem, func() { mem.Close() }, nil
	}

	client, err := cache.ConnectValkey(ctx, cfg.Valkey.Host, cfg.Valkey.Port, cfg.Valkey.Password, cfg.Valkey.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect valkey: %w", err)
	}
	return view.NewValkeyStore(client, cfg.View.TTL), func() { client.Close() }, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	registry, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := generation.New(registry, cfg.Generation.Timeout)
	views := view.NewGenerator(store, client)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("initialize template renderer: %w", err)
	}

	r := router.New(
		handlers.NewPublic(renderer),
		handlers.NewGenerator(renderer, views),
		!cfg.IsDev(),
	)

	// WriteTimeout must outlast the generation bound.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Generation.Timeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "generation_timeout", cfg.Generation.Timeout.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
