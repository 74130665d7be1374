package parser

import (
	"math"
	"strconv"

	"fortio.org/safecast"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/source"
	"zeron/internal/token"
)

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwFalse:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitFalse}), true
	case token.KwTrue:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitTrue}), true
	case token.KwNull:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitNull}), true
	case token.KwUnit:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitUnit}), true
	case token.IntLit:
		return p.parseIntOrRange()
	case token.FloatLit:
		p.advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil || math.IsInf(f, 0) {
			p.errAt(diag.LexBadNumber, tok.Span, "Float literal '"+tok.Text+"' is out of range.")
			return ast.NoExprID, false
		}
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitFloat, Float: f}), true
	case token.StringLit:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitString, Str: unquote(tok.Text)}), true
	case token.KwIf:
		return p.parseIfExpr()
	case token.Ident:
		p.advance()
		if p.at(token.Arrow) {
			return p.parseLambda(tok.Span, []ast.LambdaParam{{Name: tok.Text, Span: tok.Span}})
		}
		return p.arenas.Exprs.NewVariable(tok.Span, tok.Text), true
	case token.LParen:
		p.advance()
		if _, ok := p.eat(token.RParen); ok {
			// () -> body
			if !p.at(token.Arrow) {
				p.err(diag.SynExpectExpression, "Expect '->' after '()'.")
				return ast.NoExprID, false
			}
			return p.parseLambda(tok.Span, nil)
		}
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after expression."); !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(p.spanFrom(tok.Span), inner), true
	}

	if tok.Kind.IsKeyword() {
		p.errAt(diag.SynReservedWord, tok.Span, "'"+tok.Text+"' is a reserved word.")
		return ast.NoExprID, false
	}
	p.err(diag.SynExpectExpression, "Expect expression.")
	return ast.NoExprID, false
}

func (p *Parser) literal(tok token.Token, data ast.ExprLiteralData) ast.ExprID {
	data.Text = tok.Text
	return p.arenas.Exprs.NewLiteral(tok.Span, data)
}

// parseIntOrRange: INT или INT .. INT (обе границы включительно).
func (p *Parser) parseIntOrRange() (ast.ExprID, bool) {
	lo := p.advance()
	loVal, ok := p.intValue(lo)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.eat(token.DotDot); !ok {
		return p.literal(lo, ast.ExprLiteralData{Kind: ast.LitInt, Int: loVal}), true
	}
	hi, ok := p.expect(token.IntLit, diag.SynRangeBound, "Expect integer upper bound after '..'.")
	if !ok {
		return ast.NoExprID, false
	}
	hiVal, ok := p.intValue(hi)
	if !ok {
		return ast.NoExprID, false
	}
	span := lo.Span.Cover(hi.Span)
	return p.arenas.Exprs.NewLiteral(span, ast.ExprLiteralData{
		Kind: ast.LitRange,
		Text: lo.Text + ".." + hi.Text,
		Lo:   loVal,
		Hi:   hiVal,
	}), true
}

// Int в Zeron 32-битный.
func (p *Parser) intValue(tok token.Token) (int32, bool) {
	v, err := strconv.ParseInt(tok.Text, 10, 64)
	if err == nil {
		var n int32
		if n, err = safecast.Conv[int32](v); err == nil {
			return n, true
		}
	}
	p.errAt(diag.LexBadNumber, tok.Span, "Integer literal '"+tok.Text+"' is out of range.")
	return 0, false
}

// if (cond) then a else b
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	start := p.advance().Span
	cond, ok := p.parseParenCond("if")
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwThen, diag.SynIfExprMissingThen, "Expect 'then' after if condition."); !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwElse, diag.SynIfExprMissingElse, "Expect 'else' after then branch."); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIf(p.spanFrom(start), cond, then, els), true
}

// parseLambda разбирает всё после параметров: "->" и тело.
// Тело-выражение хранится как единственный return.
func (p *Parser) parseLambda(start source.Span, params []ast.LambdaParam) (ast.ExprID, bool) {
	arrow := p.advance()

	outerLoop := p.loopDepth
	p.fnDepth++
	p.loopDepth = 0
	defer func() {
		p.fnDepth--
		p.loopDepth = outerLoop
	}()

	var body []ast.StmtID
	if _, ok := p.eat(token.LBrace); ok {
		if body, ok = p.parseBlockBody(); !ok {
			return ast.NoExprID, false
		}
	} else {
		valueStart := p.lx.Peek().Span
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		body = []ast.StmtID{p.arenas.Stmts.NewReturn(p.spanFrom(valueStart), value)}
	}
	return p.arenas.Exprs.NewLambda(p.spanFrom(start), params, arrow.Span, body), true
}

func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	return text
}
