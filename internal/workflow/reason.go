package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/qualifier/internal/reasoning"
	"github.com/JaimeStill/qualifier/internal/scoring"
)

// reason asks the Completer for a verdict and scores it. Failed or
// unscorable attempts are retried with the degraded prompt; when every
// attempt fails the lead is queued as LOW for manual review.
func (e *Engine) reason(ctx context.Context, s *State, logger *slog.Logger) outcome {
	message := s.Input.Message

	if !scoring.NeedsReasoning(message) {
		tier, rationale, _ := scoring.Score(s.Enrichment, message, nil)
		s.SetVerdict(tier, rationale)
		return outcome{status: OutcomeSkipped}
	}

	budget := 1 + e.cfg.Retries()
	attempts := 0
	var lastErr error

	for attempt := range budget {
		if attempt > 0 && ctx.Err() != nil {
			break
		}
		attempts++

		prompt := reasoning.Prompt{
			Message:  message,
			Facts:    s.Enrichment,
			Degraded: attempt > 0,
		}

		completion, err := e.complete(ctx, prompt)
		if err == nil {
			tier, rationale, scoreErr := scoring.Score(s.Enrichment, message, completion)
			if scoreErr == nil {
				s.SetReasoning(completion)
				s.SetVerdict(tier, rationale)

				status := OutcomeOK
				if prompt.Degraded {
					status = OutcomeDegraded
				}
				return outcome{status: status, attempts: attempts}
			}
			err = &reasoning.Failure{Kind: reasoning.Malformed, Err: scoreErr}
		}

		lastErr = err
		logger.WarnContext(ctx, "reasoning attempt failed",
			"attempt", attempts,
			"degraded", prompt.Degraded,
			"kind", reasoning.KindOf(err),
			"error", err,
		)
	}

	s.SetVerdict(scoring.Low, scoring.RationaleReasoningUnavailable)
	s.AppendError(ReasoningUnavailable, fmt.Sprintf("%s: %v", reasoning.KindOf(lastErr), lastErr))

	return outcome{status: OutcomeFailed, attempts: attempts}
}

func (e *Engine) complete(ctx context.Context, p reasoning.Prompt) (*reasoning.Completion, error) {
	c, err := bounded(ctx, e.cfg.ReasoningTimeoutDuration(), func(ctx context.Context) (*reasoning.Completion, error) {
		return e.rt.Completer.Complete(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &reasoning.Failure{Kind: reasoning.Malformed, Err: ErrEmptyResult}
	}
	return c, nil
}
