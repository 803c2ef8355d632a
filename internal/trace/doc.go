// Package trace records where tagtree spends its time.
//
// Tracing is off unless asked for:
//
//	tagtree parse --trace=- --trace-level=phase page.html
//	tagtree parse --trace=run.ndjson --trace-level=detail ./site
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes every event immediately
//   - RingTracer: keeps the last N events for a dump after a fatal error
//   - MultiTracer: fans out to several tracers
//
// # Scopes
//
//   - ScopeDriver: a CLI command or a directory run
//   - ScopePass: lexing, tree building, rendering
//   - ScopeFile: one document inside a directory run
//   - ScopeNode: tree-builder recoveries (mismatched or unclosed tags)
//
// A tracer travels through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
