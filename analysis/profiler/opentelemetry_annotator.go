// Copyright © 2025 The srcscope authors

package profiler

import (
	"context"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey = "otelParentTracer"
)

type otelAnnotator struct{}

// NewOpenTelemetryAnnotator annotates analysis with opentelemetry spans
// using the global tracer provider.
func NewOpenTelemetryAnnotator() Annotator {
	return otelAnnotator{}
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "srcscope"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (otelAnnotator) Start(ctx context.Context, name, file string) (context.Context, func()) {
	ctx, span := contextTracer(ctx).Start(ctx, name)
	if file != "" {
		span.SetAttributes(semconv.CodeFilepath(file))
	}
	return ctx, func() { span.End() }
}
