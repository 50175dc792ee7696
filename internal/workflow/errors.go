package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrMissingCollaborator = errors.New("workflow collaborator required")
	ErrInvalidName         = errors.New("name is required")
	ErrInvalidEmail        = errors.New("email must have a local part and a domain")
	ErrCollaboratorTimeout = errors.New("collaborator timed out")
	ErrCollaboratorPanic   = errors.New("collaborator panicked")
	ErrEmptyResult         = errors.New("collaborator returned no result")
)

// ContractError reports a broken state or transition invariant.
// In default builds it is raised as a panic.
type ContractError struct {
	Step    Node
	Message string
}

func (e *ContractError) Error() string {
	return "workflow contract violation at " + string(e.Step) + ": " + e.Message
}
