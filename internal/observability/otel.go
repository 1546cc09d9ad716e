package observability

import (
	"context"
	"fmt"

	"atsbuddy/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Manager owns the OpenTelemetry trace pipeline for one CLI invocation.
// Metrics are deliberately absent: a one-shot process has nothing to scrape.
type Manager struct {
	config         config.ObservabilityConfig
	version        string
	tracerProvider *trace.TracerProvider
	resource       *resource.Resource
}

// NewManager sets up tracing per configuration. When disabled it returns a
// manager whose tracer is a noop, so callers never branch.
func NewManager(ctx context.Context, cfg config.ObservabilityConfig, version string) (*Manager, error) {
	m := &Manager{config: cfg, version: version}
	if !cfg.Enabled {
		return m, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}
	m.resource = res

	var exporter trace.SpanExporter
	switch {
	case cfg.OTLP.Enabled:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.OTLP.Endpoint)}
		if cfg.OTLP.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if len(cfg.OTLP.Headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(cfg.OTLP.Headers))
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
	case cfg.ConsoleOutput:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
	default:
		// Enabled with no exporter configured: spans are recorded but
		// dropped, which still propagates context to the backend.
		exporter = nil
	}

	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(cfg.SampleRate)),
	}
	if exporter != nil {
		opts = append(opts, trace.WithBatcher(exporter))
	}

	m.tracerProvider = trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(m.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return m, nil
}

// Tracer returns the application tracer, a noop when tracing is disabled.
func (m *Manager) Tracer() oteltrace.Tracer {
	if m.tracerProvider == nil {
		return noop.NewTracerProvider().Tracer(m.config.ServiceName)
	}
	return m.tracerProvider.Tracer(m.config.ServiceName)
}

// Shutdown flushes pending spans before the process exits.
func (m *Manager) Shutdown(ctx context.Context) error {
	if m.tracerProvider == nil {
		return nil
	}
	return m.tracerProvider.Shutdown(ctx)
}
