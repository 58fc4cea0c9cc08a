package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("championship-organizer/internal/usecase")

// startUsecaseSpan only opens a child span. Work outside a traced request
// (clock ticks, restore on boot) gets the non-recording span of ctx.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func matchAttr(matchID string) attribute.KeyValue {
	return attribute.String("match.id", matchID)
}

func championshipAttr(championshipID string) attribute.KeyValue {
	return attribute.String("championship.id", championshipID)
}
