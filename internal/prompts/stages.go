package prompts

import (
	"slices"
)

// Stage identifies the reasoning call a prompt template is built for.
type Stage string

// Reasoning stages.
const (
	StageReason         Stage = "reason"
	StageReasonDegraded Stage = "reason_degraded"
)

var stages = []Stage{
	StageReason,
	StageReasonDegraded,
}

// Stages returns the list of valid stages.
func Stages() []Stage {
	return stages
}

// ParseStage validates a string as a known stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
