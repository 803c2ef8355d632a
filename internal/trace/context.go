package trace

import "context"

type ctxKey struct{}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is what child spans inherit: the enclosing span and the
// document being processed, if any.
type SpanContext struct {
	SpanID uint64
	Doc    string
}

type spanCtxKey struct{}

// CurrentSpan returns the span context stored in ctx, zero if none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext attaches sc to ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// WithDocument tags every span started from the returned context with doc.
func WithDocument(ctx context.Context, doc string) context.Context {
	sc := CurrentSpan(ctx)
	sc.Doc = doc
	return WithSpanContext(ctx, sc)
}

// Start opens a span under the current one and returns a context in which
// it is current. End the span when the work is done.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	span := begin(FromContext(ctx), scope, name, parent)
	if span.id == 0 {
		return ctx, span
	}
	return WithSpanContext(ctx, SpanContext{SpanID: span.id, Doc: parent.Doc}), span
}

// Mark emits an instant event under the current span.
func Mark(ctx context.Context, scope Scope, name, detail string) {
	sc := CurrentSpan(ctx)
	point(FromContext(ctx), scope, name, sc, detail)
}
