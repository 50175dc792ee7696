package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBoundedDeadline(t *testing.T) {
	_, err := bounded(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, ErrCollaboratorTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBoundedParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := bounded(ctx, time.Minute, func(ctx context.Context) (int, error) {
		cancel()
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrCollaboratorTimeout), "cancellation is not a timeout")
}

func TestBoundedPanic(t *testing.T) {
	_, err := bounded(context.Background(), time.Second, func(context.Context) (int, error) {
		panic("boom")
	})
	assert.ErrorIs(t, err, ErrCollaboratorPanic)
}
