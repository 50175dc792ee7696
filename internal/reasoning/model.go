package reasoning

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/JaimeStill/qualifier/internal/prompts"
	"github.com/JaimeStill/qualifier/pkg/formatting"
)

const noCompanyContext = "No company information is available."

// Model renders prompts through the stage templates and asks a
// langchaingo model for a verdict.
type Model struct {
	llm llms.Model
	cfg Config
}

// New wraps an existing langchaingo model.
func New(llm llms.Model, cfg *Config) *Model {
	return &Model{llm: llm, cfg: *cfg}
}

// NewOllama creates a Model backed by an Ollama server in JSON mode.
func NewOllama(cfg *Config) (*Model, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
		ollama.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return New(llm, cfg), nil
}

// Complete renders p, calls the model, and parses its reply.
func (m *Model) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	stage, vars := m.variables(p)

	text, err := prompts.Render(stage, vars)
	if err != nil {
		return nil, &Failure{Kind: Unavailable, Err: err}
	}

	reply, err := llms.GenerateFromSinglePrompt(
		ctx, m.llm, text,
		llms.WithTemperature(m.cfg.TemperatureValue()),
	)
	if err != nil {
		return nil, classify(err)
	}

	return Decode(reply)
}

// Decode parses a model reply into a Completion.
func Decode(reply string) (*Completion, error) {
	if strings.TrimSpace(reply) == "" {
		return nil, &Failure{Kind: Malformed, Err: ErrEmptyResponse}
	}

	c, err := formatting.Parse[Completion](reply)
	if err != nil {
		return nil, &Failure{Kind: Malformed, Err: err}
	}

	c.Category = strings.TrimSpace(c.Category)
	c.Rationale = strings.TrimSpace(c.Rationale)

	if c.Category == "" {
		return nil, &Failure{Kind: Malformed, Err: ErrMissingCategory}
	}
	if c.Rationale == "" {
		return nil, &Failure{Kind: Malformed, Err: ErrMissingRationale}
	}

	return &c, nil
}

func (m *Model) variables(p Prompt) (prompts.Stage, map[string]any) {
	if p.Degraded {
		return prompts.StageReasonDegraded, map[string]any{
			prompts.VarMessage: truncate(p.Message, m.cfg.DegradedMessageLimit),
		}
	}

	company := p.Facts.Summary()
	if company == "" {
		company = noCompanyContext
	}

	return prompts.StageReason, map[string]any{
		prompts.VarMessage: p.Message,
		prompts.VarCompany: company,
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
