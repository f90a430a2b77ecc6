package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t attaches Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanFromContext returns the span started by the nearest Start, or an inert
// span.
func SpanFromContext(ctx context.Context) *Span {
	if ctx != nil {
		if s, ok := ctx.Value(spanKey{}).(*Span); ok {
			return s
		}
	}
	return inert
}

// Start begins a span under the one carried by ctx, on the tracer carried by
// ctx. The returned context carries the new span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, SpanFromContext(ctx).ID())
	if !s.live() {
		return ctx, s
	}
	return context.WithValue(ctx, spanKey{}, s), s
}
