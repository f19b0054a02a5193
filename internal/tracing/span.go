package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// SpanInfo describes the submission a span covers.
type SpanInfo struct {
	Task  int
	Word  string
	X, Y  float64
	Color string
}

// StartSubmitSpan starts a client span for one submission.
func StartSubmitSpan(ctx context.Context, tracer trace.Tracer, info SpanInfo) (context.Context, trace.Span) {
	return tracer.Start(ctx, "POST /api/words",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.Int("wordloom.task", info.Task),
			attribute.String("wordloom.word", info.Word),
			attribute.Float64("wordloom.x", info.X),
			attribute.Float64("wordloom.y", info.Y),
			attribute.String("wordloom.color", info.Color),
		),
	)
}

// EndSpan finishes a span, recording the response status and any error.
func EndSpan(span trace.Span, statusCode int, err error) {
	if statusCode > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// InjectHTTPHeaders injects W3C trace context into HTTP headers.
func InjectHTTPHeaders(ctx context.Context, headers http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(headers))
}
