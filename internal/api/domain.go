package api

import (
	"fmt"

	"github.com/JaimeStill/qualifier/internal/leads"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Leads leads.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	leadsSystem, err := leads.New(
		runtime.Database.Connection(),
		runtime.Workflow,
		runtime.Enricher,
		runtime.Completer,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
		runtime.MaxBodySize,
	)
	if err != nil {
		return nil, fmt.Errorf("leads: %w", err)
	}

	return &Domain{
		Leads: leadsSystem,
	}, nil
}
