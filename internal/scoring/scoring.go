// Package scoring maps reasoning verdicts to priority tiers.
// The policy is pure: identical inputs always produce identical outputs.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
)

// Tier is the final priority assigned to a lead.
type Tier string

// Priority tiers.
const (
	High        Tier = "HIGH"
	Medium      Tier = "MEDIUM"
	Low         Tier = "LOW"
	Unqualified Tier = "UNQUALIFIED"
)

// Fixed rationales for outcomes that do not come from a verdict.
const (
	RationaleInvalidInput         = "invalid input"
	RationaleEmptyInquiry         = "empty inquiry"
	RationaleReasoningUnavailable = "automated reasoning unavailable — manual review required"
)

// ErrUnknownCategory is returned when a verdict category has no tier mapping.
var ErrUnknownCategory = errors.New("unknown category")

var synonyms = map[string]Tier{
	"hot":              High,
	"urgent":           High,
	"warm":             Medium,
	"sales-query":      Medium,
	"cold":             Low,
	"spam":             Low,
	"support":          Low,
	"customer-support": Low,
	"job-application":  Low,
}

var levels = map[string]Tier{
	"high":   High,
	"medium": Medium,
	"low":    Low,
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	switch t {
	case High, Medium, Low, Unqualified:
		return true
	}
	return false
}

// NeedsReasoning reports whether message carries enough content to ask
// for a verdict. Blank messages are scored without one.
func NeedsReasoning(message string) bool {
	return strings.TrimSpace(message) != ""
}

// Score determines the tier and rationale for a lead. Facts are accepted
// for policy extensions and do not affect the built-in mapping.
func Score(facts *enrichment.Facts, message string, verdict *reasoning.Completion) (Tier, string, error) {
	if !NeedsReasoning(message) {
		return Unqualified, RationaleEmptyInquiry, nil
	}

	if verdict == nil {
		return "", "", fmt.Errorf("%w: no verdict", ErrUnknownCategory)
	}

	tier, err := TierFor(verdict.Category)
	if err != nil {
		return "", "", err
	}

	return tier, verdict.Rationale, nil
}

// TierFor maps a verdict category to a tier. The category is normalized
// to lower-case with hyphen separators; its leading high/medium/low token
// decides the tier, otherwise the whole category is looked up as a synonym.
func TierFor(category string) (Tier, error) {
	norm := Normalize(category)

	lead, _, _ := strings.Cut(norm, "-")
	if tier, ok := levels[lead]; ok {
		return tier, nil
	}
	if tier, ok := synonyms[norm]; ok {
		return tier, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// Normalize lower-cases category and folds spaces and underscores into hyphens.
func Normalize(category string) string {
	norm := strings.ToLower(strings.TrimSpace(category))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for strings.Contains(norm, "--") {
		norm = strings.ReplaceAll(norm, "--", "-")
	}
	return strings.Trim(norm, "-")
}
