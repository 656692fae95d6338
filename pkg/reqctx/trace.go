package reqctx

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the identifiers of the active span.
type TraceInfo struct {
	TraceID string
	SpanID  string
	Sampled bool
}

func WithTrace(ctx context.Context, info *TraceInfo) context.Context {
	return context.WithValue(ctx, keyTrace, info)
}

// TraceFromContext prefers an explicitly stored TraceInfo and falls back to the
// OpenTelemetry span carried by ctx.
func TraceFromContext(ctx context.Context) (*TraceInfo, bool) {
	if info, ok := ctx.Value(keyTrace).(*TraceInfo); ok && info != nil {
		return info, true
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil, false
	}
	return &TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
		Sampled: sc.IsSampled(),
	}, true
}

func TraceIDFromContext(ctx context.Context) string {
	if info, ok := TraceFromContext(ctx); ok {
		return info.TraceID
	}
	return ""
}
