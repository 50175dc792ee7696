package reasoning

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why a reasoning call produced no verdict.
type Kind string

// Failure kinds reported by Complete.
const (
	Unavailable Kind = "Unavailable"
	Timeout     Kind = "Timeout"
	Malformed   Kind = "Malformed"
)

// Sentinel errors wrapped by Failure values.
var (
	ErrMissingCategory  = errors.New("completion missing category")
	ErrMissingRationale = errors.New("completion missing rationale")
	ErrEmptyResponse    = errors.New("model returned no content")
)

// Failure is the typed outcome of an unsuccessful reasoning call.
type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("reasoning %s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf reports the failure kind carried by err. Deadline errors that
// are not already a Failure are classified as Timeout, anything else as
// Unavailable.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	return Unavailable
}

func classify(err error) *Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: Timeout, Err: err}
	}
	return &Failure{Kind: Unavailable, Err: err}
}
