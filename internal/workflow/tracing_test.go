package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
	"github.com/JaimeStill/qualifier/internal/workflow"
)

func TestQualifySpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	d := newDoubles()
	d.enricher.On("Lookup", mock.Anything, mock.Anything).
		Return(nil, &enrichment.Failure{Kind: enrichment.RateLimited, Err: errors.New("429")})
	d.completer.On("Complete", mock.Anything, mock.Anything).
		Return(&reasoning.Completion{Category: "low", Rationale: "r"}, nil)
	d.persister.On("Persist", mock.Anything, mock.Anything, mock.Anything).Return(uuid.New(), nil)

	rt := d.runtime()
	rt.Tracer = provider.Tracer("test-tracer")

	e, err := workflow.New(workflow.Config{}, rt)
	require.NoError(t, err)
	e.Qualify(context.Background(), validLead)

	spans := recorder.Ended()
	require.Len(t, spans, 5)

	byName := make(map[string]sdktrace.ReadOnlySpan, len(spans))
	for _, s := range spans {
		byName[s.Name()] = s
	}

	root, ok := byName["workflow.Qualify"]
	require.True(t, ok)
	for _, name := range []string{"workflow.intake", "workflow.enrich", "workflow.reason", "workflow.finalize"} {
		span, ok := byName[name]
		require.True(t, ok, "missing span %s", name)
		assert.Equal(t, root.SpanContext().SpanID(), span.Parent().SpanID())
	}

	assert.Equal(t, codes.Error, byName["workflow.enrich"].Status().Code)
	assert.Equal(t, codes.Unset, byName["workflow.reason"].Status().Code)
}
