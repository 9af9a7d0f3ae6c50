package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const usecaseTracerName = "fantasy-madness/internal/usecase"

// startUsecaseSpan only opens a child span when the caller is already traced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	current := trace.SpanFromContext(ctx)
	if !current.SpanContext().IsValid() {
		return ctx, current
	}
	return current.TracerProvider().Tracer(usecaseTracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}
