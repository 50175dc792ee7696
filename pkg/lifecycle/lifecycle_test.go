package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/qualifier/pkg/lifecycle"
)

type flag bool

func (f flag) Ready() bool { return bool(f) }

func TestReadyAfterStartup(t *testing.T) {
	lc := lifecycle.New()
	assert.False(t, lc.Ready())

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() { count.Add(1) })
	}

	lc.WaitForStartup()

	assert.True(t, lc.Ready())
	assert.Equal(t, int32(3), count.Load())
}

func TestShutdownRunsHooksAfterCancel(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	require.NoError(t, lc.Shutdown(time.Second))
	assert.True(t, cleaned.Load())
	assert.Error(t, lc.Context().Err())
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	lc.OnShutdown(func() { <-release })

	err := lc.Shutdown(20 * time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown timeout")
}

func TestChecksPending(t *testing.T) {
	checks := lifecycle.Checks{
		"storage":   flag(false),
		"database":  flag(false),
		"lifecycle": flag(true),
		"optional":  nil,
	}

	assert.Equal(t, []string{"database", "storage"}, checks.Pending())
	assert.Empty(t, lifecycle.Checks{"a": flag(true)}.Pending())
}
