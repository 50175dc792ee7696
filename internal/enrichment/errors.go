package enrichment

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup produced no facts.
type Kind string

// Failure kinds reported by Lookup.
const (
	NotFound    Kind = "NotFound"
	Unreachable Kind = "Unreachable"
	RateLimited Kind = "RateLimited"
	ParseError  Kind = "ParseError"
)

// Sentinel errors wrapped by Failure values.
var (
	ErrPersonalDomain = errors.New("personal email domain has no company site")
	ErrInvalidDomain  = errors.New("invalid domain")
	ErrBlockedAddress = errors.New("domain resolves to a non-public address")
	ErrNoContent      = errors.New("page carries no title or description")
)

// Failure is the typed outcome of an unsuccessful lookup.
type Failure struct {
	Kind   Kind
	Domain string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("enrichment %s: %s", f.Kind, f.Domain)
	}
	return fmt.Sprintf("enrichment %s: %s: %v", f.Kind, f.Domain, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(kind Kind, domain string, err error) *Failure {
	return &Failure{Kind: kind, Domain: domain, Err: err}
}

// KindOf reports the failure kind carried by err. Errors that are not a
// Failure (timeouts imposed by the caller, panics, transport errors) are
// classified as Unreachable.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return Unreachable
}
