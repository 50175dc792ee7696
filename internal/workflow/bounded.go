package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// bounded runs fn under a deadline of d. It returns as soon as the deadline
// passes even if fn ignores its context, and converts a panic in fn into
// an ErrCollaboratorPanic error. Only an expired deadline is reported as
// ErrCollaboratorTimeout; a cancelled parent is returned unchanged.
func bounded[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type reply struct {
		value T
		err   error
	}

	ch := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- reply{err: fmt.Errorf("%w: %v", ErrCollaboratorPanic, r)}
			}
		}()
		v, err := fn(ctx)
		ch <- reply{value: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		if err := ctx.Err(); !errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		return zero, fmt.Errorf("%w after %s: %w", ErrCollaboratorTimeout, d, ctx.Err())
	}
}
