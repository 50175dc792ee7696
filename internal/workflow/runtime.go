package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
)

// Enricher looks up company facts for an email domain.
type Enricher interface {
	Lookup(ctx context.Context, domain string) (*enrichment.Facts, error)
}

// Completer produces a reasoning verdict for a prompt.
type Completer interface {
	Complete(ctx context.Context, p reasoning.Prompt) (*reasoning.Completion, error)
}

// Persister writes the frozen result of a run and returns the record id.
type Persister interface {
	Persist(ctx context.Context, lead Lead, result Result) (uuid.UUID, error)
}

// Runtime bundles the collaborators that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Enricher  Enricher
	Completer Completer
	Persister Persister
	Logger    *slog.Logger
	Tracer    trace.Tracer
}
