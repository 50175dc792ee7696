package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/qualifier/internal/config"
	"github.com/JaimeStill/qualifier/internal/infrastructure"
	"github.com/JaimeStill/qualifier/internal/leads"
)

var rootCmd = &cobra.Command{
	Use:           "qualify",
	Short:         "Qualify inbound sales leads",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(leadCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(promptCmd)
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// session holds the started systems a qualification command needs.
type session struct {
	infra   *infrastructure.Infrastructure
	leads   leads.System
	timeout time.Duration
}

func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	sys, err := leads.New(
		infra.Database.Connection(),
		cfg.Workflow,
		infra.Enricher,
		infra.Completer,
		infra.Storage,
		infra.Logger.With("module", "cli"),
		cfg.API.Pagination,
		cfg.API.MaxBodySizeBytes(),
	)
	if err != nil {
		return nil, err
	}

	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	if pending := infra.Checks().Pending(); len(pending) > 0 {
		infra.Logger.Warn("subsystems not ready, results may not persist", "pending", pending)
	}

	return &session{
		infra:   infra,
		leads:   sys,
		timeout: cfg.ShutdownTimeoutDuration(),
	}, nil
}

func (s *session) Close() error {
	return s.infra.Lifecycle.Shutdown(s.timeout)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
