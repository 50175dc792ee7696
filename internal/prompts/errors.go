package prompts

import "errors"

// ErrInvalidStage is returned for unknown stage values.
var ErrInvalidStage = errors.New("stage must be reason or reason_degraded")
