package tracing_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/JaimeStill/qualifier/pkg/lifecycle"
	"github.com/JaimeStill/qualifier/pkg/tracing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewDisabled(t *testing.T) {
	cfg := &tracing.Config{}
	require.NoError(t, cfg.Finalize(nil))

	p, err := tracing.New(context.Background(), cfg, "0.1.0", discard())
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.Equal(t, otel.GetTracerProvider(), p.TracerProvider())
	assert.NoError(t, p.Start(lifecycle.New()))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewEnabledInstallsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cfg := &tracing.Config{
		Enabled:         true,
		Endpoint:        "127.0.0.1:4317",
		Insecure:        true,
		ShutdownTimeout: "100ms",
	}
	require.NoError(t, cfg.Finalize(nil))

	p, err := tracing.New(context.Background(), cfg, "0.1.0", discard())
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, ok := p.TracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)
	assert.Same(t, p.TracerProvider(), otel.GetTracerProvider())

	_, span := otel.Tracer("test").Start(context.Background(), "qualify")
	assert.True(t, span.IsRecording(), "global tracer must record once enabled")
	assert.True(t, span.SpanContext().IsSampled())
	span.End()

	lc := lifecycle.New()
	require.NoError(t, p.Start(lc))
	assert.NoError(t, lc.Shutdown(5*time.Second))
}

func TestConfigDefaults(t *testing.T) {
	cfg := &tracing.Config{}
	require.NoError(t, cfg.Finalize(nil))

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.Equal(t, "qualifier", cfg.ServiceName)
	assert.Equal(t, 1.0, cfg.Ratio())
	assert.Equal(t, 5*time.Second, cfg.BatchTimeoutDuration())
}

func TestConfigValidation(t *testing.T) {
	ratio := 1.5
	assert.Error(t, (&tracing.Config{SampleRatio: &ratio}).Finalize(nil))
	assert.Error(t, (&tracing.Config{BatchTimeout: "soon"}).Finalize(nil))
}

func TestConfigEnvAndMerge(t *testing.T) {
	t.Setenv("TEST_TRACING_ENABLED", "true")
	t.Setenv("TEST_TRACING_SAMPLE_RATIO", "0")

	cfg := &tracing.Config{}
	require.NoError(t, cfg.Finalize(&tracing.Env{
		Enabled:     "TEST_TRACING_ENABLED",
		SampleRatio: "TEST_TRACING_SAMPLE_RATIO",
	}))
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 0.0, cfg.Ratio())

	half := 0.5
	cfg.Merge(&tracing.Config{Endpoint: "collector:4317", SampleRatio: &half})
	assert.Equal(t, "collector:4317", cfg.Endpoint)
	assert.Equal(t, 0.5, cfg.Ratio())
}
