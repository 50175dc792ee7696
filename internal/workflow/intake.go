package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/qualifier/internal/scoring"
)

// intake validates the lead. An invalid lead is decided here as
// UNQUALIFIED and routed straight to finalize.
func (e *Engine) intake(ctx context.Context, s *State, logger *slog.Logger) outcome {
	if err := Validate(s.Input); err != nil {
		s.AppendError(InputInvalid, err.Error())
		s.SetVerdict(scoring.Unqualified, scoring.RationaleInvalidInput)

		logger.WarnContext(ctx, "lead rejected", "error", err)
		return outcome{status: OutcomeRejected}
	}

	return outcome{status: OutcomeOK}
}

// Validate reports whether lead carries a usable name and email.
func Validate(lead Lead) error {
	if strings.TrimSpace(lead.Name) == "" {
		return ErrInvalidName
	}

	email := strings.TrimSpace(lead.Email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, lead.Email)
	}

	return nil
}
