// Package infrastructure provides core service initialization for application startup.
// It assembles the shared systems (logging, tracing, database, storage) and
// the workflow collaborators (enrichment lookup, reasoning model) that domain
// systems require.
package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/qualifier/internal/config"
	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
	"github.com/JaimeStill/qualifier/pkg/database"
	"github.com/JaimeStill/qualifier/pkg/lifecycle"
	"github.com/JaimeStill/qualifier/pkg/storage"
	"github.com/JaimeStill/qualifier/pkg/tracing"
)

// Infrastructure holds the core systems required by all domain modules.
// Storage is nil when no storage connection is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Tracing   *tracing.Provider
	Database  database.System
	Storage   storage.System
	Enricher  *enrichment.Lookup
	Completer *reasoning.Model
}

// NewLogger creates the text logger shared by every system.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := NewLogger(os.Stderr, cfg.Level())

	tp, err := tracing.New(context.Background(), &cfg.Tracing, cfg.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn("storage not configured, audit archiving disabled")
		store = nil
	case err != nil:
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	enricher, err := enrichment.New(&cfg.Enrichment, logger)
	if err != nil {
		return nil, fmt.Errorf("enrichment init failed: %w", err)
	}

	completer, err := reasoning.NewOllama(&cfg.Reasoning)
	if err != nil {
		return nil, fmt.Errorf("reasoning init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Tracing:   tp,
		Database:  db,
		Storage:   store,
		Enricher:  enricher,
		Completer: completer,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Tracing.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("tracing start failed: %w", err)
	}
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}

// Checks returns the readiness checkers consulted by the readiness probe.
// Storage is omitted when archiving is disabled.
func (i *Infrastructure) Checks() lifecycle.Checks {
	checks := lifecycle.Checks{
		"lifecycle": i.Lifecycle,
		"database":  i.Database,
	}
	if i.Storage != nil {
		checks["storage"] = i.Storage
	}
	return checks
}
