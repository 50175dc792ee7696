package leads

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/qualifier/internal/workflow"
	"github.com/JaimeStill/qualifier/pkg/pagination"
)

// System defines the public contract for lead domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Lead], error)

	Find(ctx context.Context, id uuid.UUID) (*Lead, error)

	// Audit returns the archived run snapshot for a persisted lead.
	Audit(ctx context.Context, id uuid.UUID) (*Audit, error)

	// Qualify runs the workflow for cmd. The result is never nil; every
	// business outcome, including persistence failure, is carried inside it.
	Qualify(ctx context.Context, cmd QualifyCommand) *workflow.Result
}
