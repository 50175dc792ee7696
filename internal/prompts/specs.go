package prompts

const reasonSpec = `Respond with a JSON object matching this exact structure:

{
  "category": "<high|medium|low>-<short-label>",
  "rationale": "<explanation>"
}

Field constraints:
- category: Starts with the intent level (high, medium, or low) followed by a
  short hyphenated label describing the inquiry (e.g., "high-intent-bulk",
  "medium-general-interest", "low-support-request").
- rationale: One or two sentences explaining the intent level, citing the
  parts of the message or company context that drove the decision.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never invent company details that are not provided`

const reasonDegradedSpec = `Respond with JSON only: {"category": "<high|medium|low>-<label>", "rationale": "<one sentence>"}`

var specs = map[Stage]string{
	StageReason:         reasonSpec,
	StageReasonDegraded: reasonDegradedSpec,
}

// Spec returns the output specification for a stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
