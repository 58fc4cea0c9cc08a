package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("championship-organizer/internal/interfaces/httpapi")

const handlerSpanPrefix = "httpapi.Handler."

// startSpan opens spans for handlers only, and only under a traced
// request. Middleware and helpers reuse the current span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !isHandlerSpan(name) {
		return ctx, noopSpan{parent}
	}
	var attrs []attribute.KeyValue
	if id := requestIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("http.request_id", id))
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// noopSpan lets callers defer End without closing the parent span.
type noopSpan struct{ trace.Span }

func (noopSpan) End(...trace.SpanEndOption) {}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

// RequestTracing starts the root server span, named after the matched
// route pattern.
func RequestTracing(serviceName string, next http.Handler) http.Handler {
	if serviceName == "" {
		serviceName = "championship-organizer"
	}
	return otelhttp.NewHandler(next, serviceName+"-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			if r.Pattern != "" {
				return r.Pattern
			}
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	}
	// websocket sessions outlive any useful span
	return !strings.HasSuffix(normalized, "/live")
}
