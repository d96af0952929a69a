// Package trace records what the linter is doing while it runs.
//
// Tracing is off by default. Enable it from the command line:
//
//	cairolint diag --trace=- --trace-level=phase src/
//	cairolint diag --trace=run.ndjson --trace-level=debug --trace-mode=ring src/
//
// Two sinks exist. The stream sink writes every accepted event as it happens.
// The ring sink keeps the last N events and writes them once, on Close,
// which keeps long directory runs cheap while still showing how they ended.
// Output is text, or NDJSON when the path ends in .ndjson or .jsonl.
//
// Spans travel in the context, so nested calls pick up their parent:
//
//	ctx, span := trace.Begin(ctx, trace.ScopeFile, "diagnose_file")
//	defer span.End("")
package trace
