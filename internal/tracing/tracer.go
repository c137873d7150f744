// Package tracing provides OpenTelemetry spans around calculator evaluations.
// Tracing is off by default; the stdout exporter writes one JSON document per
// finished span.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/agbru/reducecalc/internal/calculator"
)

// TracerName is the instrumentation scope name.
const TracerName = "github.com/agbru/reducecalc"

// ExporterType selects where finished spans go.
type ExporterType string

const (
	ExporterNone   ExporterType = "none"
	ExporterStdout ExporterType = "stdout"
)

// Config holds tracing configuration.
type Config struct {
	ExporterType ExporterType
	ServiceName  string
	Version      string
	Output       io.Writer // stdout exporter destination; nil means os.Stdout
}

// DefaultConfig returns a configuration with tracing disabled.
func DefaultConfig() Config {
	return Config{
		ExporterType: ExporterNone,
		ServiceName:  "reducecalc",
		Version:      "dev",
	}
}

// Tracer wraps an OpenTelemetry tracer with calculator-specific spans.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// New creates a Tracer. ExporterNone yields a no-op tracer.
func New(ctx context.Context, cfg Config) (*Tracer, error) {
	switch cfg.ExporterType {
	case ExporterNone, "":
		return &Tracer{tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	case ExporterStdout:
		opts := []stdouttrace.Option{}
		if cfg.Output != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.Output))
		}
		exporter, err := stdouttrace.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create exporter: %w", err)
		}
		return NewWithExporter(ctx, cfg, exporter)
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.ExporterType)
	}
}

// NewWithExporter creates a Tracer that hands every finished span to exporter
// synchronously.
func NewWithExporter(ctx context.Context, cfg Config, exporter sdktrace.SpanExporter) (*Tracer, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.Version),
		),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return &Tracer{
		tracer:   provider.Tracer(TracerName, trace.WithInstrumentationVersion(cfg.Version)),
		provider: provider,
	}, nil
}

// Shutdown flushes and stops the tracer provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider != nil {
		return t.provider.Shutdown(ctx)
	}
	return nil
}

// StartRun starts the root span of a batch run.
func (t *Tracer) StartRun(ctx context.Context, runID string, inputs int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "reducecalc.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("run.inputs", inputs),
		),
	)
}

// EvaluationSpan represents the evaluation of one input.
type EvaluationSpan struct {
	span trace.Span
}

// StartEvaluation starts a span for one input of a run.
func (t *Tracer) StartEvaluation(ctx context.Context, index int, strategy string) (context.Context, *EvaluationSpan) {
	ctx, span := t.tracer.Start(ctx, "calculator.evaluate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("input.index", index),
			attribute.String("strategy", strategy),
		),
	)
	return ctx, &EvaluationSpan{span: span}
}

// End records the evaluation breakdown and ends the span.
func (es *EvaluationSpan) End(ev calculator.Evaluation) {
	es.span.SetAttributes(
		attribute.Int("tokens.total", len(ev.Tokens)),
		attribute.Int("tokens.parsed", ev.Parsed()),
		attribute.Int("tokens.coerced", len(ev.Coerced)),
		attribute.Int("tokens.dropped", ev.Dropped),
		attribute.Bool("short_circuit", ev.ShortCircuit),
		attribute.Float64("result", ev.Result),
	)
	es.span.SetStatus(codes.Ok, "")
	es.span.End()
}

// EndWithError ends the span with error status.
func (es *EvaluationSpan) EndWithError(err error) {
	es.span.RecordError(err)
	es.span.SetStatus(codes.Error, err.Error())
	es.span.End()
}
