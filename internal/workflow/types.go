package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/qualifier/internal/scoring"
)

// Node identifies a workflow step.
type Node string

// Workflow nodes. NodeDone is the terminal sentinel returned by Transition
// once Finalize has run.
const (
	NodeIntake   Node = "intake"
	NodeEnrich   Node = "enrich"
	NodeReason   Node = "reason"
	NodeFinalize Node = "finalize"
	NodeDone     Node = "done"
)

// ErrorKind classifies an entry in a run's error log.
type ErrorKind string

// Error kinds recorded by workflow nodes. ContractViolation only appears
// in builds tagged production.
const (
	InputInvalid          ErrorKind = "InputInvalid"
	EnrichmentUnavailable ErrorKind = "EnrichmentUnavailable"
	ReasoningUnavailable  ErrorKind = "ReasoningUnavailable"
	PersistenceFailed     ErrorKind = "PersistenceFailed"
	ContractViolation     ErrorKind = "ContractViolation"
)

// Step outcomes recorded in the audit trail.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeDegraded = "degraded"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Lead is the raw input submitted for qualification.
type Lead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ErrorEntry is one recorded failure, in the order it occurred.
type ErrorEntry struct {
	Step    Node      `json:"step"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Step is one audit trail entry.
type Step struct {
	Node      Node          `json:"node"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Outcome   string        `json:"outcome"`
	Attempts  int           `json:"attempts,omitempty"`
}

// Result is the final verdict of a run. It is the only artifact that
// leaves the engine.
type Result struct {
	RunID             uuid.UUID    `json:"run_id"`
	Tier              scoring.Tier `json:"tier"`
	Rationale         string       `json:"rationale"`
	Category          *string      `json:"category,omitempty"`
	EnrichmentSummary *string      `json:"enrichment_summary,omitempty"`
	Errors            []ErrorEntry `json:"errors"`
	Trail             []Step       `json:"trail"`
	RecordID          *uuid.UUID   `json:"record_id,omitempty"`
	CompletedAt       time.Time    `json:"completed_at"`
}

// HasError reports whether the result recorded an entry of kind.
func (r *Result) HasError(kind ErrorKind) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
