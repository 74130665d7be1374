package lexer

import (
	"zeron/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк, // и /* */ комментарии.
// Блочные комментарии не вкладываются; незакрытый репортится и съедает остаток файла.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		case '/':
			_, b1, ok := lx.cursor.Peek2()
			if !ok {
				return
			}
			switch b1 {
			case '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
			case '*':
				lx.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}
