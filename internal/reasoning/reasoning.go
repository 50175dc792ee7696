// Package reasoning adapts a langchaingo text-completion model into the
// lead-qualification reasoning step. A completion returns an intent
// category plus a rationale; every unsuccessful call surfaces as a *Failure.
package reasoning

import (
	"github.com/JaimeStill/qualifier/internal/enrichment"
)

// Prompt is the input to a reasoning call.
// Degraded prompts omit enrichment facts and truncate the message.
type Prompt struct {
	Message  string
	Facts    *enrichment.Facts
	Degraded bool
}

// Completion is the structured verdict returned by the model.
type Completion struct {
	Category  string `json:"category"`
	Rationale string `json:"rationale"`
}
