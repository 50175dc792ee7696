// Package tracing installs the OpenTelemetry SDK tracer provider and
// exports spans over OTLP/gRPC.
package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/JaimeStill/qualifier/pkg/lifecycle"
)

// Provider owns the process tracer provider. A disabled Provider leaves
// the global no-op provider in place.
type Provider struct {
	tp     *sdktrace.TracerProvider
	cfg    Config
	logger *slog.Logger
}

// New builds the SDK tracer provider and installs it as the global
// provider. The exporter connects lazily, so New makes no network call.
func New(ctx context.Context, cfg *Config, version string, logger *slog.Logger) (*Provider, error) {
	p := &Provider{
		cfg:    *cfg,
		logger: logger.With("system", "tracing"),
	}

	if !cfg.Enabled {
		return p, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace resource: %w", err)
	}

	p.tp = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(cfg.BatchTimeoutDuration())),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Ratio()))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(p.tp)

	p.logger.Info("tracing enabled", "endpoint", cfg.Endpoint, "sample_ratio", cfg.Ratio())
	return p, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p.tp != nil
}

// TracerProvider returns the SDK provider when enabled and the global
// provider otherwise.
func (p *Provider) TracerProvider() trace.TracerProvider {
	if p.tp == nil {
		return otel.GetTracerProvider()
	}
	return p.tp
}

// Start registers a shutdown hook that flushes pending spans.
func (p *Provider) Start(lc *lifecycle.Coordinator) error {
	if p.tp == nil {
		return nil
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.ShutdownTimeoutDuration())
		defer cancel()

		if err := p.Shutdown(ctx); err != nil {
			p.logger.Error("tracing shutdown error", "error", err)
			return
		}
		p.logger.Info("tracing shutdown complete")
	})

	return nil
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}
