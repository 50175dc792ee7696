package prompts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/qualifier/internal/prompts"
)

func TestParseStage(t *testing.T) {
	for _, s := range prompts.Stages() {
		got, err := prompts.ParseStage(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := prompts.ParseStage("classify")
	assert.ErrorIs(t, err, prompts.ErrInvalidStage)
}

func TestInstructionsAndSpecCoverEveryStage(t *testing.T) {
	for _, s := range prompts.Stages() {
		instr, err := prompts.Instructions(s)
		require.NoError(t, err)
		assert.NotEmpty(t, instr)

		spec, err := prompts.Spec(s)
		require.NoError(t, err)
		assert.Contains(t, spec, "category")
	}

	_, err := prompts.Instructions("bogus")
	assert.ErrorIs(t, err, prompts.ErrInvalidStage)
	_, err = prompts.Spec("bogus")
	assert.ErrorIs(t, err, prompts.ErrInvalidStage)
}

func TestRenderReason(t *testing.T) {
	out, err := prompts.Render(prompts.StageReason, map[string]any{
		prompts.VarMessage: "We need 500 units by Q3",
		prompts.VarCompany: "Acme; industrial widgets",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "We need 500 units by Q3")
	assert.Contains(t, out, "Acme; industrial widgets")
	assert.Contains(t, out, `"rationale"`)
}

func TestRenderDegradedOmitsCompany(t *testing.T) {
	out, err := prompts.Render(prompts.StageReasonDegraded, map[string]any{
		prompts.VarMessage: "pricing please",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "pricing please")
	assert.NotContains(t, out, "COMPANY CONTEXT")
}

func TestRenderInvalidStage(t *testing.T) {
	_, err := prompts.Render("bogus", nil)
	assert.ErrorIs(t, err, prompts.ErrInvalidStage)
}
