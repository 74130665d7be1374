package parser

import (
	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/token"
)

// Приоритеты, от слабого к сильному:
//
//	assignment  = += -= *= /=   (правоассоциативно)
//	or
//	and
//	equality    == !=
//	comparison  < <= > >=
//	term        + -
//	factor      * /
//	unary       not - typeof
//	call        name(args)
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseAssignment()
}

// parseAssignment: составное присваивание a op= v разворачивается в a = a op v.
func (p *Parser) parseAssignment() (ast.ExprID, bool) {
	target, ok := p.parseOr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Assign) && !p.lx.Peek().Kind.IsCompoundAssign() {
		return target, true
	}
	opTok := p.advance()
	value, ok := p.parseAssignment()
	if !ok {
		return ast.NoExprID, false
	}

	v, isVar := p.arenas.Exprs.Variable(target)
	if !isVar {
		p.errAt(diag.SynInvalidAssignTarget, opTok.Span, "Invalid assignment target.")
		return target, true
	}
	targetSpan := p.arenas.Exprs.Get(target).Span
	span := targetSpan.Cover(p.lastSpan)
	if opTok.Kind != token.Assign {
		k, _ := opTok.Kind.BinaryOf()
		binOp, _ := binaryOpOf(k)
		value = p.arenas.Exprs.NewBinary(span, binOp, opTok.Span, target, value)
	}
	return p.arenas.Exprs.NewAssign(span, v.Name, targetSpan, value), true
}

func (p *Parser) parseOr() (ast.ExprID, bool) {
	return p.parseLogical(token.KwOr, ast.LogicalOr, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.ExprID, bool) {
	return p.parseLogical(token.KwAnd, ast.LogicalAnd, p.parseEquality)
}

func (p *Parser) parseLogical(kw token.Kind, op ast.LogicalOp, next func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	left, ok := next()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(kw) {
		p.advance()
		right, ok := next()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.lastSpan)
		left = p.arenas.Exprs.NewLogical(span, op, left, right)
	}
	return left, true
}

func (p *Parser) parseEquality() (ast.ExprID, bool) {
	return p.parseBinaryLevel(p.parseComparison, token.EqEq, token.BangEq)
}

func (p *Parser) parseComparison() (ast.ExprID, bool) {
	return p.parseBinaryLevel(p.parseTerm, token.Gt, token.GtEq, token.Lt, token.LtEq)
}

func (p *Parser) parseTerm() (ast.ExprID, bool) {
	return p.parseBinaryLevel(p.parseFactor, token.Minus, token.Plus)
}

func (p *Parser) parseFactor() (ast.ExprID, bool) {
	return p.parseBinaryLevel(p.parseUnary, token.Slash, token.Star)
}

// parseBinaryLevel — левоассоциативный уровень бинарных операторов.
func (p *Parser) parseBinaryLevel(next func() (ast.ExprID, bool), ops ...token.Kind) (ast.ExprID, bool) {
	left, ok := next()
	if !ok {
		return ast.NoExprID, false
	}
	for p.atOr(ops...) {
		opTok := p.advance()
		right, ok := next()
		if !ok {
			return ast.NoExprID, false
		}
		op, _ := binaryOpOf(opTok.Kind)
		span := p.arenas.Exprs.Get(left).Span.Cover(p.lastSpan)
		left = p.arenas.Exprs.NewBinary(span, op, opTok.Span, left, right)
	}
	return left, true
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	var op ast.UnaryOp
	switch p.lx.Peek().Kind {
	case token.KwNot:
		op = ast.UnaryNot
	case token.Minus:
		op = ast.UnaryNeg
	case token.KwTypeof:
		op = ast.UnaryTypeof
	default:
		return p.parseCall()
	}
	start := p.advance().Span
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(p.spanFrom(start), op, operand, false), true
}

// parseCall: вызывать можно только по имени, name(args).
func (p *Parser) parseCall() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.LParen) {
		lparen := p.advance()
		v, isVar := p.arenas.Exprs.Variable(expr)
		if !isVar {
			p.errAt(diag.SynCalleeNotName, lparen.Span, "Can only call functions by name.")
			return ast.NoExprID, false
		}
		calleeSpan := p.arenas.Exprs.Get(expr).Span

		var args []ast.ExprID
		if !p.at(token.RParen) {
			for {
				if len(args) >= maxArgs {
					p.err(diag.SynTooManyArgs, "Can't have more than 254 arguments.")
				}
				arg, ok := p.parseExpr()
				if !ok {
					return ast.NoExprID, false
				}
				args = append(args, arg)
				if _, ok := p.eat(token.Comma); !ok {
					break
				}
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after arguments."); !ok {
			return ast.NoExprID, false
		}
		expr = p.arenas.Exprs.NewCall(calleeSpan.Cover(p.lastSpan), v.Name, calleeSpan, args)
	}
	return expr, true
}

func binaryOpOf(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.BinaryAdd, true
	case token.Minus:
		return ast.BinarySub, true
	case token.Star:
		return ast.BinaryMul, true
	case token.Slash:
		return ast.BinaryDiv, true
	case token.EqEq:
		return ast.BinaryEq, true
	case token.BangEq:
		return ast.BinaryNotEq, true
	case token.Lt:
		return ast.BinaryLt, true
	case token.LtEq:
		return ast.BinaryLtEq, true
	case token.Gt:
		return ast.BinaryGt, true
	case token.GtEq:
		return ast.BinaryGtEq, true
	default:
		return 0, false
	}
}
