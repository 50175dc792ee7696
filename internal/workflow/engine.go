// Package workflow implements the lead-qualification engine: an explicit
// state machine (intake → enrich → reason → finalize) that accumulates an
// add-only State per run and always produces a Result.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/JaimeStill/qualifier/internal/workflow"

type outcome struct {
	status   string
	attempts int
}

type nodeFunc func(ctx context.Context, s *State, logger *slog.Logger) outcome

// Engine runs qualification workflows. It holds only configuration and
// collaborator references and is safe for concurrent use.
type Engine struct {
	cfg    Config
	rt     Runtime
	logger *slog.Logger
	tracer trace.Tracer
	nodes  map[Node]nodeFunc
}

// New creates an Engine. cfg is finalized on a copy so zero values take
// their defaults.
func New(cfg Config, rt *Runtime) (*Engine, error) {
	if rt == nil || rt.Enricher == nil || rt.Completer == nil || rt.Persister == nil {
		return nil, ErrMissingCollaborator
	}

	if err := cfg.Finalize(nil); err != nil {
		return nil, fmt.Errorf("workflow config: %w", err)
	}

	logger := rt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tracer := rt.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	e := &Engine{
		cfg:    cfg,
		rt:     *rt,
		logger: logger.With("workflow", "qualify"),
		tracer: tracer,
	}

	e.nodes = map[Node]nodeFunc{
		NodeIntake:   e.intake,
		NodeEnrich:   e.enrich,
		NodeReason:   e.reason,
		NodeFinalize: e.finalize,
	}

	return e, nil
}

// Config returns the finalized engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Qualify runs the workflow for lead and returns its Result. It never
// returns nil: collaborator failures, timeouts, and panics are recorded in
// the result's error log.
//
// The run is detached from ctx cancellation and bounded by RunTimeout, so a
// caller that goes away cannot turn into a recorded verdict. Values carried
// by ctx (trace spans, request ids) are kept.
func (e *Engine) Qualify(ctx context.Context, lead Lead) *Result {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.RunTimeoutDuration())
	defer cancel()

	s := NewState(uuid.New(), lead)
	logger := e.logger.With("run_id", s.RunID)

	ctx, span := e.tracer.Start(ctx, "workflow.Qualify",
		trace.WithAttributes(attribute.String("qualifier.run_id", s.RunID.String())),
	)
	defer span.End()

	visited := make(map[Node]bool, len(e.nodes))

	for node := NodeIntake; node != NodeDone; node = Transition(node, s) {
		if visited[node] {
			s.violate(fmt.Sprintf("node %s revisited", node))
			break
		}
		visited[node] = true
		e.step(ctx, node, s, logger)
	}

	result := s.result()

	span.SetAttributes(
		attribute.String("qualifier.tier", string(result.Tier)),
		attribute.Int("qualifier.errors", len(result.Errors)),
	)

	logger.InfoContext(ctx, "qualification complete",
		"tier", result.Tier,
		"errors", len(result.Errors),
		"persisted", result.RecordID != nil,
	)

	return &result
}

func (e *Engine) step(ctx context.Context, node Node, s *State, logger *slog.Logger) {
	fn, ok := e.nodes[node]
	if !ok {
		s.violate(fmt.Sprintf("unknown node %s", node))
		return
	}

	ctx, span := e.tracer.Start(ctx, "workflow."+string(node))
	defer span.End()

	s.current = node
	errorsBefore := len(s.Errors)
	started := time.Now()

	out := fn(ctx, s, logger)

	duration := time.Since(started)
	s.appendStep(Step{
		Node:      node,
		StartedAt: started.UTC(),
		Duration:  duration,
		Outcome:   out.status,
		Attempts:  out.attempts,
	})

	span.SetAttributes(
		attribute.String("qualifier.node", string(node)),
		attribute.String("qualifier.outcome", out.status),
	)
	if out.attempts > 0 {
		span.SetAttributes(attribute.Int("qualifier.attempts", out.attempts))
	}
	if len(s.Errors) > errorsBefore {
		last := s.Errors[len(s.Errors)-1]
		span.SetStatus(codes.Error, string(last.Kind))
	}

	logger.InfoContext(ctx, "node complete",
		"node", node,
		"outcome", out.status,
		"duration", duration,
	)
}
