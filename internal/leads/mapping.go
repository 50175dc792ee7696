package leads

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/JaimeStill/qualifier/internal/workflow"
	"github.com/JaimeStill/qualifier/pkg/query"
	"github.com/JaimeStill/qualifier/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "leads", "l").
	Project("id", "ID").
	Project("run_id", "RunID").
	Project("name", "Name").
	Project("email", "Email").
	Project("message", "Message").
	Project("tier", "Tier").
	Project("rationale", "Rationale").
	Project("category", "Category").
	Project("enrichment_summary", "EnrichmentSummary").
	Project("errors", "Errors").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for lead queries.
// Nil fields are ignored. Tier matches exactly, Email by substring.
type Filters struct {
	Tier          *string    `json:"tier,omitempty"`
	Email         *string    `json:"email,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var tier *string
	if f.Tier != nil {
		t := strings.ToUpper(strings.TrimSpace(*f.Tier))
		tier = &t
	}

	return b.
		WhereEquals("Tier", tier).
		WhereContains("Email", f.Email).
		WhereAfter("CreatedAt", f.CreatedAfter).
		WhereBefore("CreatedAt", f.CreatedBefore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Timestamps use RFC 3339; unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("tier"); t != "" {
		f.Tier = &t
	}

	if e := values.Get("email"); e != "" {
		f.Email = &e
	}

	if v := values.Get("created_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedAfter = &t
		}
	}

	if v := values.Get("created_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedBefore = &t
		}
	}

	return f
}

func scanLead(s repository.Scanner) (Lead, error) {
	var l Lead
	var errorsRaw []byte

	err := s.Scan(
		&l.ID,
		&l.RunID,
		&l.Name,
		&l.Email,
		&l.Message,
		&l.Tier,
		&l.Rationale,
		&l.Category,
		&l.EnrichmentSummary,
		&errorsRaw,
		&l.CreatedAt,
	)

	if err != nil {
		return l, err
	}

	if len(errorsRaw) > 0 {
		if err := json.Unmarshal(errorsRaw, &l.Errors); err != nil {
			return l, fmt.Errorf("unmarshal errors: %w", err)
		}
	}

	if l.Errors == nil {
		l.Errors = []workflow.ErrorEntry{}
	}

	return l, nil
}
