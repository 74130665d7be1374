package parser

import (
	"context"
	"slices"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/lexer"
	"zeron/internal/source"
	"zeron/internal/token"
	"zeron/internal/trace"
)

// maxArgs caps parameters and call arguments.
const maxArgs = 254

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена

	// уровни вложенности: return допустим только в функции или лямбде,
	// break только в цикле текущей функции
	fnDepth   int
	loopDepth int

	// fn объявляется только на верхнем уровне
	blockDepth int
}

// ParseFile — входная точка для разбора одного файла.
// Statements that fail to parse are dropped after resynchronizing at the
// next statement boundary.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "parse_file", 0)
	defer span.End("")

	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.parseTop()
	return Result{File: p.file, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// IsError reports whether any error was reported.
func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseTop — основной цикл верхнего уровня: пока не EOF — parseDeclaration.
func (p *Parser) parseTop() {
	start := p.lx.Peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		id, ok := p.parseDeclaration()
		if !ok {
			p.synchronize()
			continue
		}
		p.arenas.PushStmt(p.file, id)
	}
	p.arenas.Files.Get(p.file).Span = start.Cover(p.lastSpan)
}

// synchronize пропускает токены до границы следующего оператора:
// после ';' или перед ключевым словом, начинающим оператор.
func (p *Parser) synchronize() {
	if p.at(token.EOF) {
		return
	}
	prev := p.advance()
	for !p.at(token.EOF) {
		if prev.Kind == token.Semicolon {
			return
		}
		if isStmtStarter(p.lx.Peek().Kind) {
			return
		}
		prev = p.advance()
	}
}

func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwBreak, token.KwClass, token.KwContract, token.KwLet, token.KwFn, token.KwFor,
		token.KwIf, token.KwWhile, token.KwUntil, token.KwLoop, token.KwPrint, token.KwReturn:
		return true
	default:
		return false
	}
}
