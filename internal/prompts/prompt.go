// Package prompts holds the reasoning prompt catalog. Each stage pairs
// instructions with an output specification and renders through a
// langchaingo prompt template.
package prompts

import (
	"fmt"
	"strings"

	lcprompts "github.com/tmc/langchaingo/prompts"
)

// Template variables.
const (
	VarMessage = "message"
	VarCompany = "company"
)

const reasonBody = `LEAD MESSAGE:
{{.message}}

COMPANY CONTEXT:
{{.company}}`

const reasonDegradedBody = `LEAD MESSAGE:
{{.message}}`

var bodies = map[Stage]string{
	StageReason:         reasonBody,
	StageReasonDegraded: reasonDegradedBody,
}

var variables = map[Stage][]string{
	StageReason:         {VarMessage, VarCompany},
	StageReasonDegraded: {VarMessage},
}

// Template composes the instructions, body, and specification for a stage
// into a langchaingo prompt template.
func Template(stage Stage) (lcprompts.PromptTemplate, error) {
	instr, err := Instructions(stage)
	if err != nil {
		return lcprompts.PromptTemplate{}, err
	}
	spec, err := Spec(stage)
	if err != nil {
		return lcprompts.PromptTemplate{}, err
	}

	text := strings.Join([]string{instr, bodies[stage], spec}, "\n\n")
	return lcprompts.NewPromptTemplate(text, variables[stage]), nil
}

// Render formats the stage template with vars.
func Render(stage Stage, vars map[string]any) (string, error) {
	tmpl, err := Template(stage)
	if err != nil {
		return "", err
	}

	out, err := tmpl.Format(vars)
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", stage, err)
	}
	return out, nil
}
