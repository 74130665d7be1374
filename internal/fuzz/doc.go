// Package fuzztests houses Go fuzz harnesses for the Zeron front end
// (source -> lexer -> parser -> resolver). They guard against panics,
// hangs and broken tree invariants on arbitrary input.
//
// Не делает: генерацию корпусов, исполнение программ, запуск CLI.
package fuzztests
