package lexer

import (
	"zeron/internal/token"
)

// Десятичные литералы: 123 и 1.5. Точка входит в число только если за ней
// цифра, так что "1..5" — это IntLit DotDot IntLit, а "1.foo" — IntLit Dot Ident.
// Диапазон значений проверяет парсер.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
