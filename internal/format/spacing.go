package format

import "zeron/internal/token"

type sep uint8

const (
	sepNone sep = iota
	sepSpace
	sepNewline
)

// endsOperand reports whether a '-' or '!' after k is binary.
func endsOperand(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.RParen, token.RBracket, token.KwThis:
		return true
	}
	return t.IsLiteral()
}

// between picks the separator for two adjacent tokens. hadSpace tells
// whether the source had trivia between them; prevUnary marks a prefix
// '-' or '!'.
func between(prev, next token.Token, hadSpace, prevUnary bool) sep {
	p, n := prev.Kind, next.Kind
	switch {
	case p == token.LBrace:
		if n == token.RBrace {
			return sepNone
		}
		return sepNewline
	case n == token.RBrace, p == token.Semicolon:
		return sepNewline
	case p == token.RBrace:
		switch n {
		case token.KwElse:
			return sepSpace
		case token.RParen, token.Comma, token.Semicolon:
			return sepNone
		}
		return sepNewline
	}

	// '<' и '>' бывают и сравнением, и скобками аргументов типа
	if p == token.Lt || p == token.Gt || n == token.Lt || n == token.Gt {
		if hadSpace {
			return sepSpace
		}
		return sepNone
	}

	switch n {
	case token.RParen, token.RBracket, token.Comma, token.Semicolon, token.Colon,
		token.Question, token.DotDot, token.Dot, token.QuestionDot, token.ColonColon:
		return sepNone
	}
	switch p {
	case token.LParen, token.LBracket, token.DotDot, token.Dot, token.QuestionDot,
		token.ColonColon, token.Amp:
		return sepNone
	case token.Minus, token.Bang:
		if prevUnary {
			return sepNone
		}
	}
	if n == token.LParen || n == token.LBracket {
		switch p {
		case token.Ident, token.RParen, token.KwPrint:
			return sepNone
		}
	}
	return sepSpace
}
