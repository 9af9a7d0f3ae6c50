package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

const apiTracerName = "fantasy-madness/internal/interfaces/httpapi"

// startSpan opens a child span for handler methods only. Middleware and
// helpers reuse the request span, and untraced requests get none. The child
// comes from the request span's provider.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	current := trace.SpanFromContext(ctx)
	if !current.SpanContext().IsValid() || !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return current.TracerProvider().Tracer(apiTracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}
