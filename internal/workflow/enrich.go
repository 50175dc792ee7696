package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/qualifier/internal/enrichment"
)

// enrich looks up company facts for the lead's email domain. Lookup is
// best-effort: any failure is logged and the run continues without facts.
func (e *Engine) enrich(ctx context.Context, s *State, logger *slog.Logger) outcome {
	domain := enrichment.Domain(s.Input.Email)

	facts, err := bounded(ctx, e.cfg.EnrichmentTimeoutDuration(), func(ctx context.Context) (*enrichment.Facts, error) {
		return e.rt.Enricher.Lookup(ctx, domain)
	})
	if err == nil && facts == nil {
		err = &enrichment.Failure{Kind: enrichment.NotFound, Domain: domain, Err: ErrEmptyResult}
	}

	if err != nil {
		kind := enrichment.KindOf(err)
		s.AppendError(EnrichmentUnavailable, fmt.Sprintf("%s: %v", kind, err))

		logger.WarnContext(ctx, "enrichment unavailable", "domain", domain, "kind", kind, "error", err)
		return outcome{status: OutcomeDegraded}
	}

	s.SetEnrichment(facts)
	return outcome{status: OutcomeOK}
}
