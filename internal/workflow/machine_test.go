package workflow_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/qualifier/internal/scoring"
	"github.com/JaimeStill/qualifier/internal/workflow"
)

func TestTransition(t *testing.T) {
	undecided := workflow.NewState(uuid.New(), workflow.Lead{})
	decided := workflow.NewState(uuid.New(), workflow.Lead{})
	decided.Tier = scoring.Unqualified

	tests := []struct {
		name  string
		from  workflow.Node
		state *workflow.State
		want  workflow.Node
	}{
		{"intake continues to enrich", workflow.NodeIntake, undecided, workflow.NodeEnrich},
		{"intake short-circuits when decided", workflow.NodeIntake, decided, workflow.NodeFinalize},
		{"enrich to reason", workflow.NodeEnrich, undecided, workflow.NodeReason},
		{"reason to finalize", workflow.NodeReason, decided, workflow.NodeFinalize},
		{"finalize to done", workflow.NodeFinalize, decided, workflow.NodeDone},
		{"done stays done", workflow.NodeDone, decided, workflow.NodeDone},
		{"unknown node ends the run", workflow.Node("bogus"), undecided, workflow.NodeDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workflow.Transition(tt.from, tt.state))
		})
	}
}

func TestTransitionDoesNotMutateState(t *testing.T) {
	s := workflow.NewState(uuid.New(), workflow.Lead{Name: "Jane"})
	before := *s

	for _, n := range []workflow.Node{workflow.NodeIntake, workflow.NodeEnrich, workflow.NodeReason, workflow.NodeFinalize} {
		workflow.Transition(n, s)
	}

	assert.Equal(t, before, *s)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, workflow.Validate(workflow.Lead{Name: "Jane", Email: "jane@acme.com"}))
	assert.ErrorIs(t, workflow.Validate(workflow.Lead{Email: "jane@acme.com"}), workflow.ErrInvalidName)
	assert.ErrorIs(t, workflow.Validate(workflow.Lead{Name: "Jane", Email: "jane"}), workflow.ErrInvalidEmail)
	assert.ErrorIs(t, workflow.Validate(workflow.Lead{Name: "Jane", Email: "@acme.com"}), workflow.ErrInvalidEmail)
	assert.ErrorIs(t, workflow.Validate(workflow.Lead{Name: "Jane", Email: "jane@"}), workflow.ErrInvalidEmail)
}
