// Package token defines lexical token kinds for Zeron.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Keywords are case-sensitive; type names (Int, Float, ...) are identifiers
//     and are recognized by the parser, not the lexer.
//   - Reserved words (class, contract, match, ...) lex as keywords even though
//     the grammar does not use them yet.
package token
