package console

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// observe wraps a menu action with an access log line: the operation, how
// long the operator spent in it, and the trace id when one rides in ctx.
func (u *UI) observe(ctx context.Context, op string, handler func(ctx context.Context)) {
	start := time.Now().UTC()

	handler(ctx)

	var traceID string

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	if spanTraceID := uuid.UUID(trace.SpanContextFromContext(ctx).TraceID()); spanTraceID != uuid.Nil {
		traceID = spanTraceID.String()
	}

	u.l.LogInfo(
		"type: access, op: %s, traceID: %s, latency: %s",
		op,
		traceID,
		time.Since(start),
	)
}
