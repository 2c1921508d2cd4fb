package obs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Recorder encapsulates per-operation tracing/metrics bookkeeping.
type Recorder struct {
	start time.Time
	span  trace.Span
	attrs []attribute.KeyValue
}

// StartOp starts a span for an SDK operation and counts it.
func StartOp(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Recorder) {
	ctx, span := Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
	recordOp(attrs...)
	return ctx, &Recorder{start: time.Now(), span: span, attrs: attrs}
}

// End finalizes span/metrics for the operation.
func (r *Recorder) End(err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	}
	recordLatency(time.Since(r.start).Seconds()*1000, r.attrs...)
	r.span.End()
}

// AddAttributes appends attributes to both span and subsequent metrics.
func (r *Recorder) AddAttributes(attrs ...attribute.KeyValue) {
	if r == nil {
		return
	}
	r.attrs = append(r.attrs, attrs...)
	r.span.SetAttributes(attrs...)
}
