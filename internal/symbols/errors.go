package symbols

import (
	"errors"
	"fmt"

	"zeron/internal/diag"
)

// Error is a user-facing symbol table failure. Code is one of
// SemaDuplicateSymbol, SemaUnknownSymbol or SemaInvalidState.
type Error struct {
	Code diag.Code
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

// ErrDesync reports that scope sizes and the LVT disagree. It is an
// internal bug, never a user error.
var ErrDesync = errors.New("desynchronized symbol table")

func duplicate(name, msg string) error {
	return &Error{Code: diag.SemaDuplicateSymbol, Name: name, Msg: msg}
}

func unknown(name string) error {
	return &Error{Code: diag.SemaUnknownSymbol, Name: name, Msg: "Unknown symbol."}
}

func invalidState(name, msg string) error {
	return &Error{Code: diag.SemaInvalidState, Name: name, Msg: msg}
}
