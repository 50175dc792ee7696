package workflow

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
	"github.com/JaimeStill/qualifier/internal/scoring"
)

// State accumulates everything known about a single run. Fields are
// add-only: each may be set once, the error log and audit trail only grow,
// and nothing but the error log and trail may change after Freeze.
// A State is owned by exactly one run and is not safe for concurrent use.
type State struct {
	RunID      uuid.UUID
	Input      Lead
	Enrichment *enrichment.Facts
	Reasoning  *reasoning.Completion
	Tier       scoring.Tier
	Rationale  string
	Errors     []ErrorEntry
	Trail      []Step

	current     Node
	frozen      bool
	completedAt time.Time
	recordID    *uuid.UUID
}

// NewState creates the state for a run over lead.
func NewState(runID uuid.UUID, lead Lead) *State {
	return &State{
		RunID:   runID,
		Input:   lead,
		current: NodeIntake,
	}
}

// Frozen reports whether Freeze has been called.
func (s *State) Frozen() bool {
	return s.frozen
}

// SetEnrichment records lookup facts. Facts may only be set once and
// never after the tier is decided.
func (s *State) SetEnrichment(f *enrichment.Facts) {
	switch {
	case s.frozen:
		s.violate("enrichment written after freeze")
	case s.Enrichment != nil:
		s.violate("enrichment already set")
	case s.Tier != "":
		s.violate("enrichment written after tier was decided")
	default:
		s.Enrichment = f
	}
}

// SetReasoning records the verdict returned by the reasoning step.
func (s *State) SetReasoning(c *reasoning.Completion) {
	switch {
	case s.frozen:
		s.violate("reasoning written after freeze")
	case s.Reasoning != nil:
		s.violate("reasoning already set")
	case s.Tier != "":
		s.violate("reasoning written after tier was decided")
	default:
		s.Reasoning = c
	}
}

// SetVerdict records the tier and rationale.
func (s *State) SetVerdict(tier scoring.Tier, rationale string) {
	switch {
	case s.frozen:
		s.violate("verdict written after freeze")
	case s.Tier != "":
		s.violate(fmt.Sprintf("tier already set to %s", s.Tier))
	case !tier.Valid():
		s.violate(fmt.Sprintf("invalid tier %q", tier))
	default:
		s.Tier = tier
		s.Rationale = rationale
	}
}

// AppendError adds an entry to the error log.
func (s *State) AppendError(kind ErrorKind, message string) {
	s.Errors = append(s.Errors, ErrorEntry{
		Step:    s.current,
		Kind:    kind,
		Message: message,
	})
}

// Freeze locks the verdict fields and returns the pre-persistence snapshot.
func (s *State) Freeze() Result {
	if s.frozen {
		s.violate("state frozen twice")
		return s.result()
	}
	if s.Tier == "" {
		s.violate("freeze without a tier")
	}

	s.frozen = true
	s.completedAt = time.Now().UTC()
	return s.result()
}

func (s *State) setRecordID(id uuid.UUID) {
	if s.recordID != nil {
		s.violate("record id already set")
		return
	}
	s.recordID = &id
}

func (s *State) appendStep(step Step) {
	s.Trail = append(s.Trail, step)
}

func (s *State) result() Result {
	r := Result{
		RunID:       s.RunID,
		Tier:        s.Tier,
		Rationale:   s.Rationale,
		Errors:      slices.Clone(s.Errors),
		Trail:       slices.Clone(s.Trail),
		CompletedAt: s.completedAt,
	}

	if r.Errors == nil {
		r.Errors = []ErrorEntry{}
	}
	if r.Trail == nil {
		r.Trail = []Step{}
	}
	if s.Reasoning != nil {
		category := s.Reasoning.Category
		r.Category = &category
	}
	if s.Enrichment != nil {
		summary := s.Enrichment.Summary()
		r.EnrichmentSummary = &summary
	}
	if s.recordID != nil {
		id := *s.recordID
		r.RecordID = &id
	}

	return r
}

func (s *State) violate(message string) {
	if strictContracts {
		panic(&ContractError{Step: s.current, Message: message})
	}
	s.AppendError(ContractViolation, message)
}
