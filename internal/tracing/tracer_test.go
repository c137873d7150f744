package tracing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/agbru/reducecalc/internal/calculator"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	if cfg.ExporterType != ExporterNone {
		t.Errorf("expected exporter type 'none', got %s", cfg.ExporterType)
	}
	if cfg.ServiceName != "reducecalc" {
		t.Errorf("expected service name 'reducecalc', got %s", cfg.ServiceName)
	}
}

func TestNew_Disabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tracer, err := New(ctx, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tracer.provider != nil {
		t.Error("disabled tracer should not own a provider")
	}

	// Spans still work when disabled.
	_, span := tracer.StartEvaluation(ctx, 0, "sum")
	span.End(calculator.New().Evaluate("1,2"))

	if err := tracer.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNew_UnsupportedExporter(t *testing.T) {
	t.Parallel()
	if _, err := New(context.Background(), Config{ExporterType: "jaeger"}); err == nil {
		t.Error("expected error for unsupported exporter")
	}
}

func TestNew_StdoutExporter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	buf := &bytes.Buffer{}

	cfg := DefaultConfig()
	cfg.ExporterType = ExporterStdout
	cfg.Output = buf

	tracer, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, span := tracer.StartEvaluation(ctx, 0, "sum")
	span.End(calculator.New().Evaluate("1,2"))
	if err := tracer.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if !strings.Contains(buf.String(), "calculator.evaluate") {
		t.Errorf("stdout exporter output missing span name:\n%s", buf.String())
	}
}

func TestEvaluationSpan_Attributes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()

	tracer, err := NewWithExporter(ctx, DefaultConfig(), exporter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tracer.Shutdown(ctx)

	runCtx, run := tracer.StartRun(ctx, "run-1", 2)
	_, ok := tracer.StartEvaluation(runCtx, 0, "sum")
	ok.End(calculator.New().Evaluate("1, ,x"))
	_, failed := tracer.StartEvaluation(runCtx, 1, "sum")
	failed.EndWithError(errors.New("canceled"))
	run.End()

	spans := exporter.GetSpans()
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}

	first := spans[0]
	if first.Name != "calculator.evaluate" {
		t.Errorf("first span name = %q", first.Name)
	}
	if first.Parent.SpanID() != spans[2].SpanContext.SpanID() {
		t.Error("evaluation span should be a child of the run span")
	}
	want := map[attribute.Key]attribute.Value{
		"tokens.total":   attribute.IntValue(3),
		"tokens.parsed":  attribute.IntValue(1),
		"tokens.coerced": attribute.IntValue(1),
		"tokens.dropped": attribute.IntValue(1),
		"result":         attribute.Float64Value(1),
	}
	got := map[attribute.Key]attribute.Value{}
	for _, kv := range first.Attributes {
		got[kv.Key] = kv.Value
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attribute %s = %v, want %v", k, got[k].Emit(), v.Emit())
		}
	}

	if spans[1].Status.Code != codes.Error {
		t.Errorf("failed span status = %v, want Error", spans[1].Status.Code)
	}
}
