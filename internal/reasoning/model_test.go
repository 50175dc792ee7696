package reasoning_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
)

type fakeLLM struct {
	response string
	err      error

	prompts []string
	opts    llms.CallOptions
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, opt := range options {
		opt(&f.opts)
	}
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

var _ llms.Model = (*fakeLLM)(nil)

func newModel(t *testing.T, llm llms.Model) *reasoning.Model {
	t.Helper()
	cfg := &reasoning.Config{DegradedMessageLimit: 10}
	require.NoError(t, cfg.Finalize(nil))
	return reasoning.New(llm, cfg)
}

func TestCompleteFullPrompt(t *testing.T) {
	llm := &fakeLLM{response: `{"category":"high-intent-bulk","rationale":"Specific volume and timeline."}`}
	m := newModel(t, llm)

	got, err := m.Complete(context.Background(), reasoning.Prompt{
		Message: "We need 500 units by Q3",
		Facts:   &enrichment.Facts{Domain: "acme.com", Company: "Acme", Description: "Industrial widgets"},
	})
	require.NoError(t, err)

	assert.Equal(t, "high-intent-bulk", got.Category)
	assert.Equal(t, "Specific volume and timeline.", got.Rationale)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "We need 500 units by Q3")
	assert.Contains(t, llm.prompts[0], "Acme; Industrial widgets")
	assert.Equal(t, 0.0, llm.opts.Temperature)
}

func TestCompleteWithoutFacts(t *testing.T) {
	llm := &fakeLLM{response: `{"category":"medium","rationale":"vague"}`}
	m := newModel(t, llm)

	_, err := m.Complete(context.Background(), reasoning.Prompt{Message: "tell me more"})
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[0], "No company information is available.")
}

func TestCompleteDegradedPrompt(t *testing.T) {
	llm := &fakeLLM{response: "```json\n{\"category\":\"low\",\"rationale\":\"short\"}\n```"}
	m := newModel(t, llm)

	got, err := m.Complete(context.Background(), reasoning.Prompt{
		Message:  "0123456789TRUNCATED",
		Facts:    &enrichment.Facts{Domain: "acme.com", Company: "Acme"},
		Degraded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "low", got.Category)

	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "0123456789")
	assert.NotContains(t, prompt, "TRUNCATED")
	assert.NotContains(t, prompt, "Acme")
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeLLM
		kind reasoning.Kind
	}{
		{"provider error", &fakeLLM{err: errors.New("connection refused")}, reasoning.Unavailable},
		{"provider deadline", &fakeLLM{err: context.DeadlineExceeded}, reasoning.Timeout},
		{"not json", &fakeLLM{response: "I think this lead is great"}, reasoning.Malformed},
		{"empty reply", &fakeLLM{response: "   "}, reasoning.Malformed},
		{"missing category", &fakeLLM{response: `{"rationale":"x"}`}, reasoning.Malformed},
		{"missing rationale", &fakeLLM{response: `{"category":"high"}`}, reasoning.Malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newModel(t, tt.llm).Complete(context.Background(), reasoning.Prompt{Message: "hello"})
			require.Error(t, err)

			var f *reasoning.Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, tt.kind, f.Kind)
		})
	}
}

func TestDecodeTrimsFields(t *testing.T) {
	got, err := reasoning.Decode(`{"category":"  warm ","rationale":" ok "}`)
	require.NoError(t, err)
	assert.Equal(t, "warm", got.Category)
	assert.Equal(t, "ok", got.Rationale)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, reasoning.Timeout, reasoning.KindOf(context.DeadlineExceeded))
	assert.Equal(t, reasoning.Unavailable, reasoning.KindOf(errors.New("boom")))
	assert.Equal(t, reasoning.Malformed, reasoning.KindOf(&reasoning.Failure{Kind: reasoning.Malformed, Err: reasoning.ErrMissingCategory}))
	assert.True(t, strings.HasPrefix((&reasoning.Failure{Kind: reasoning.Timeout, Err: context.DeadlineExceeded}).Error(), "reasoning Timeout"))
}

func TestConfigDefaults(t *testing.T) {
	cfg := &reasoning.Config{}
	require.NoError(t, cfg.Finalize(nil))
	assert.Equal(t, "http://localhost:11434", cfg.BaseURL)
	assert.Equal(t, 500, cfg.DegradedMessageLimit)

	bad := &reasoning.Config{Temperature: floatPtr(5)}
	assert.Error(t, bad.Finalize(nil))
}

func floatPtr(v float64) *float64 { return &v }

func TestConfigMergeZeroTemperature(t *testing.T) {
	base := &reasoning.Config{Temperature: floatPtr(0.2)}

	base.Merge(&reasoning.Config{})
	assert.Equal(t, 0.2, base.TemperatureValue(), "unset overlay keeps base")

	base.Merge(&reasoning.Config{Temperature: floatPtr(0)})
	require.NotNil(t, base.Temperature)
	assert.Equal(t, 0.0, base.TemperatureValue())
}

func TestConfigTemperatureEnv(t *testing.T) {
	t.Setenv("TEST_REASONING_TEMPERATURE", "0")

	cfg := &reasoning.Config{Temperature: floatPtr(0.7)}
	require.NoError(t, cfg.Finalize(&reasoning.Env{Temperature: "TEST_REASONING_TEMPERATURE"}))
	assert.Equal(t, 0.0, cfg.TemperatureValue())
}
