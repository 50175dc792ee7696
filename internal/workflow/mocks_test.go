package workflow_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
	"github.com/JaimeStill/qualifier/internal/workflow"
)

type mockEnricher struct{ mock.Mock }

func (m *mockEnricher) Lookup(ctx context.Context, domain string) (*enrichment.Facts, error) {
	args := m.Called(ctx, domain)
	facts, _ := args.Get(0).(*enrichment.Facts)
	return facts, args.Error(1)
}

type mockCompleter struct{ mock.Mock }

func (m *mockCompleter) Complete(ctx context.Context, p reasoning.Prompt) (*reasoning.Completion, error) {
	args := m.Called(ctx, p)
	c, _ := args.Get(0).(*reasoning.Completion)
	return c, args.Error(1)
}

type mockPersister struct{ mock.Mock }

func (m *mockPersister) Persist(ctx context.Context, lead workflow.Lead, result workflow.Result) (uuid.UUID, error) {
	args := m.Called(ctx, lead, result)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

type doubles struct {
	enricher  *mockEnricher
	completer *mockCompleter
	persister *mockPersister
}

func newDoubles() *doubles {
	return &doubles{
		enricher:  &mockEnricher{},
		completer: &mockCompleter{},
		persister: &mockPersister{},
	}
}

func (d *doubles) runtime() *workflow.Runtime {
	return &workflow.Runtime{
		Enricher:  d.enricher,
		Completer: d.completer,
		Persister: d.persister,
	}
}

func fullPrompt() any {
	return mock.MatchedBy(func(p reasoning.Prompt) bool { return !p.Degraded })
}

func degradedPrompt() any {
	return mock.MatchedBy(func(p reasoning.Prompt) bool { return p.Degraded })
}
