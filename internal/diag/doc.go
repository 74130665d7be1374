// Package diag defines the diagnostic model shared by the lexer, the parser,
// the resolver and the evaluator.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX/SYN/SEM/IO/RUN ranges), a short Message, the Primary span
// and optional Notes pointing at related locations.
//
// Phases emit through a Reporter; BagReporter collects into a bounded Bag that
// supports sorting and deduplication. Rendering lives in internal/diagfmt.
//
// The resolver is fail-fast: it emits at most one SEM diagnostic per pass.
// The parser recovers at statement boundaries and may emit many SYN ones.
package diag
