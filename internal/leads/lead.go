// Package leads stores qualified leads and exposes the qualification workflow
// over HTTP. The repository is the workflow's persistence collaborator.
package leads

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/qualifier/internal/scoring"
	"github.com/JaimeStill/qualifier/internal/workflow"
)

// Lead is a persisted qualification record. Records are append-only.
type Lead struct {
	ID                uuid.UUID             `json:"id"`
	RunID             uuid.UUID             `json:"run_id"`
	Name              string                `json:"name"`
	Email             string                `json:"email"`
	Message           string                `json:"message"`
	Tier              scoring.Tier          `json:"tier"`
	Rationale         string                `json:"rationale"`
	Category          *string               `json:"category,omitempty"`
	EnrichmentSummary *string               `json:"enrichment_summary,omitempty"`
	Errors            []workflow.ErrorEntry `json:"errors"`
	CreatedAt         time.Time             `json:"created_at"`
}

// QualifyCommand is the request body for a qualification run.
type QualifyCommand struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (c QualifyCommand) lead() workflow.Lead {
	return workflow.Lead{
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
	}
}

// Audit is the archived snapshot of a single run: the submitted lead and
// the result the engine produced for it.
type Audit struct {
	Lead   workflow.Lead   `json:"lead"`
	Result workflow.Result `json:"result"`
}
