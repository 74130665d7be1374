// Package trace records phase and module boundaries of a zeron run.
//
// Enable tracing via command-line flags:
//
//	zeron check --trace=- --trace-level=detail main.zr
//
// A disabled tracer costs one interface call per span: Begin returns a span
// whose End is a no-op.
//
// Tracers travel through context.Context (WithTracer / FromContext) so the
// lexer, parser and resolver need no extra parameters.
package trace
