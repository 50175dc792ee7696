package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// finalize freezes the state and persists the result exactly once.
// Persistence runs detached from the caller's cancellation so a computed
// verdict is still recorded; a failure is logged in the error log and
// never changes the verdict.
func (e *Engine) finalize(ctx context.Context, s *State, logger *slog.Logger) outcome {
	snapshot := s.Freeze()

	id, err := bounded(context.WithoutCancel(ctx), e.cfg.PersistTimeoutDuration(), func(ctx context.Context) (uuid.UUID, error) {
		return e.rt.Persister.Persist(ctx, s.Input, snapshot)
	})
	if err == nil && id == uuid.Nil {
		err = ErrEmptyResult
	}

	if err != nil {
		s.AppendError(PersistenceFailed, err.Error())

		logger.ErrorContext(ctx, "persist failed", "tier", s.Tier, "error", err)
		return outcome{status: OutcomeFailed}
	}

	s.setRecordID(id)
	logger.InfoContext(ctx, "lead persisted", "record_id", id, "tier", s.Tier)

	return outcome{status: OutcomeOK}
}
