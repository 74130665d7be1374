package token

import (
	"zeron/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token carries a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNull, KwUnit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for "at '...'" style messages.
func (t Token) Describe() string {
	if t.Kind == EOF {
		return "end of file"
	}
	if t.Text != "" {
		return "'" + t.Text + "'"
	}
	return "'" + t.Kind.String() + "'"
}
