// Package enrichment implements the company lookup tool used to add context
// to a lead. The lookup is keyed on the lead's email domain and reports every
// outcome other than success as a typed Failure rather than a fatal error.
package enrichment

import "strings"

// Facts holds externally sourced signals about the company behind an email
// domain. The homepage lookup never fills Size; other sources may.
type Facts struct {
	Domain      string `json:"domain"`
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Size        string `json:"size,omitempty"`
}

// Summary renders the facts as a single line suitable for persistence and prompts.
// Returns an empty string for nil facts.
func (f *Facts) Summary() string {
	if f == nil {
		return ""
	}

	name := f.Company
	if name == "" {
		name = f.Title
	}
	if name == "" {
		name = f.Domain
	}

	parts := []string{name}
	if f.Size != "" {
		parts = append(parts, "size: "+f.Size)
	}
	if f.Description != "" {
		parts = append(parts, f.Description)
	}

	return strings.Join(parts, "; ")
}
