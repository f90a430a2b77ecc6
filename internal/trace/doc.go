// Package trace records what the verdant driver is doing while it lexes,
// parses and checks files.
//
// Tracing is switched on from the command line:
//
//	verdant check --trace=- --trace-level=detail src/
//
// A Tracer receives Events. StreamTracer writes them as they happen,
// RingTracer keeps the last N for a dump when a command fails, and Fanout
// sends each event to several of them. Nop is used when tracing is off.
//
// Each event has a Scope (driver, pass, file, node). The Level decides which
// scopes get through: phase keeps driver and pass events, detail adds
// per-file events, debug keeps everything.
//
// Spans travel in the context together with the tracer:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse_files")
//	defer span.End("")
package trace
