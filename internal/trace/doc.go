// Package trace records what the front end is doing while it runs.
//
// Tracing is off unless the CLI asks for it:
//
//	esfront check --trace=- --trace-level=phase src/
//
// Tracers:
//
//   - Nop: the default, emits nothing
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last events in memory for a post-mortem dump
//   - LogTracer: forwards events to a logrus logger
//   - MultiTracer: fans out to several of the above
//
// Scopes from coarse to fine are ScopeDriver (a CLI command), ScopeFile
// (one file in a batch), ScopePhase (lex, parse, attach, directives) and
// ScopeNode (recovery points inside the parser). The level decides which
// scopes are emitted.
//
// Tracers travel through the driver on the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, 0)
//	defer span.End("")
package trace
