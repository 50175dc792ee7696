package prompts

const reasonInstructions = `You are a senior partner at a consultancy qualifying inbound sales leads.
Decide how much of a salesperson's time this lead deserves.

Weigh the following signals:
- A concrete business need, budget, timeline, or volume raises intent
- A recognizable company behind the email domain raises intent
- Vague curiosity from a professional sender is medium intent
- Support requests, job applications, and spam are low intent`

const reasonDegradedInstructions = `You are qualifying an inbound sales lead from its message alone.
A previous attempt to qualify this lead failed, so keep the answer short.
Judge only the message text. Concrete needs, budgets, or timelines are high
intent; vague interest is medium; support, job seeking, and spam are low.`

var instructions = map[Stage]string{
	StageReason:         reasonInstructions,
	StageReasonDegraded: reasonDegradedInstructions,
}

// Instructions returns the system instructions for a stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
