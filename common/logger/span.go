package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "meetapp"

var traceContext = propagation.TraceContext{}

// TaskSpan is the consumer span around one queued task.
type TaskSpan struct {
	ctx  context.Context
	span trace.Span
}

// StartTaskSpan starts a consumer span for a task read from the queue. When
// traceParent is the W3C traceparent recorded by the producer, the span
// continues that trace and links to it, so the mail shows up under the HTTP
// request that caused it. An empty or malformed value starts a fresh trace.
func StartTaskSpan(ctx context.Context, traceParent, taskType, messageID string) *TaskSpan {
	opts := []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "redis"),
			attribute.String("messaging.operation", "process"),
			attribute.String("messaging.message.id", messageID),
			attribute.String("meetapp.task_type", taskType),
		),
	}

	if traceParent != "" {
		ctx = traceContext.Extract(ctx, propagation.MapCarrier{"traceparent": traceParent})
		if remote := trace.SpanContextFromContext(ctx); remote.IsValid() {
			opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
		}
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "task "+taskType, opts...)
	return &TaskSpan{ctx: ctx, span: span}
}

func (s *TaskSpan) Context() context.Context {
	return s.ctx
}

// Finish records err, if any, and ends the span.
func (s *TaskSpan) Finish(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

// TraceParentFromContext returns the W3C traceparent of the active span, or
// "". The producer stores it with each task.
func TraceParentFromContext(ctx context.Context) string {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ""
	}
	carrier := propagation.MapCarrier{}
	traceContext.Inject(ctx, carrier)
	return carrier.Get("traceparent")
}
