package sema

import (
	"errors"
	"fmt"

	"zeron/internal/diag"
	"zeron/internal/source"
	"zeron/internal/symbols"
	"zeron/internal/types"
)

// ResolutionError ends a resolution pass. Code is one of the Sema* codes.
type ResolutionError struct {
	Code diag.Code
	Span source.Span
	Name string // offending symbol, if any
	Msg  string
}

func (e *ResolutionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %s", e.Code.ID(), e.Name, e.Msg)
	}
	return fmt.Sprintf("%s %s", e.Code.ID(), e.Msg)
}

func errorf(code diag.Code, sp source.Span, format string, args ...any) error {
	return &ResolutionError{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

func mismatch(sp source.Span, expected, got types.Type) error {
	return errorf(diag.SemaTypeMismatch, sp, "Expected %s, found %s.", expected, got)
}

// symErr turns a symbol table failure into a resolution error at sp.
// A desynchronized table is a resolver bug and panics.
func symErr(err error, sp source.Span) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, symbols.ErrDesync) {
		panic(err)
	}
	var se *symbols.Error
	if errors.As(err, &se) {
		return &ResolutionError{Code: se.Code, Span: sp, Name: se.Name, Msg: se.Msg}
	}
	return &ResolutionError{Code: diag.SemaInvalidState, Span: sp, Msg: err.Error()}
}

func asResolutionError(err error) *ResolutionError {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re
	}
	return &ResolutionError{Code: diag.SemaInvalidState, Msg: err.Error()}
}
