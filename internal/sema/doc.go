// Package sema resolves a parsed Zeron file: it assigns every expression
// its type, refines inferred bindings in the symbol table and enforces the
// scoping and initialization rules.
//
// Resolution is fail-fast. The first error ends the pass and is returned in
// Result.Err; nothing after it is resolved.
//
// Lambdas bound without an annotation are typed per call site: each
// distinct argument-type tuple re-resolves the lambda body into an
// Instance, leaving the declaration itself untouched.
package sema
