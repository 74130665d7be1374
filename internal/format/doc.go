// Package format re-spaces Zeron source. It works on the token stream of
// a file that already lexes and parses cleanly: tokens are re-emitted
// with canonical spacing and brace indentation, comments are kept where
// they were and runs of blank lines collapse to one.
//
// Не делает: переупорядочивание кода, перенос длинных строк, IO.
// Зависимости: internal/lexer, internal/source, internal/token.
package format
