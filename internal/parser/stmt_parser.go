package parser

import (
	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/token"
	"zeron/internal/types"
)

// parseDeclaration: let и fn, иначе обычный оператор.
// На верхнем уровне операторы тоже допустимы (скриптовый режим).
func (p *Parser) parseDeclaration() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwFn:
		return p.parseFn()
	default:
		return p.parseStatement()
	}
}

// let [mut] name [: Type] [= expr];
func (p *Parser) parseLet() (ast.StmtID, bool) {
	start := p.advance().Span
	final := true
	if _, ok := p.eat(token.KwMut); ok {
		final = false
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect binding name.")
	if !ok {
		return ast.NoStmtID, false
	}
	typ := types.Infer()
	if _, ok := p.eat(token.Colon); ok {
		if typ, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	init := ast.NoExprID
	if _, ok := p.eat(token.Assign); ok {
		if init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "Expect ';' after variable declaration."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLet(p.spanFrom(start), ast.StmtLetData{
		Name:     name.Text,
		NameSpan: name.Span,
		Type:     typ,
		Init:     init,
		Final:    final,
	}), true
}

// fn name(p: T, ...) [: R] { body }  |  fn name(...) = expr;
func (p *Parser) parseFn() (ast.StmtID, bool) {
	start := p.advance().Span
	if p.blockDepth > 0 {
		p.errAt(diag.SynNestedFn, start, "Functions can only be declared at the top level.")
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect function name.")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expect '(' after function name."); !ok {
		return ast.NoStmtID, false
	}

	var params []ast.FnParam
	if !p.at(token.RParen) {
		for {
			if len(params) >= maxArgs {
				p.err(diag.SynTooManyParams, "Can't have more than 254 parameters.")
			}
			pname, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect parameter name.")
			if !ok {
				return ast.NoStmtID, false
			}
			if _, ok := p.expect(token.Colon, diag.SynExpectType, "Expect ':' after parameter name."); !ok {
				return ast.NoStmtID, false
			}
			pt, ok := p.parseType()
			if !ok {
				return ast.NoStmtID, false
			}
			params = append(params, ast.FnParam{Name: pname.Text, Span: pname.Span, Type: pt})
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after parameters."); !ok {
		return ast.NoStmtID, false
	}

	ret := types.Unit()
	if _, ok := p.eat(token.Colon); ok {
		if ret, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}

	outerLoop := p.loopDepth
	p.fnDepth++
	p.loopDepth = 0
	defer func() {
		p.fnDepth--
		p.loopDepth = outerLoop
	}()

	var body []ast.StmtID
	exprBody := false
	if eq, ok := p.eat(token.Assign); ok {
		// тело-выражение: тип возврата выводится
		ret = types.Infer()
		exprBody = true
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		body = []ast.StmtID{p.arenas.Stmts.NewReturn(eq.Span.Cover(p.lastSpan), value)}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "Expect ';' after expression."); !ok {
			return ast.NoStmtID, false
		}
	} else {
		if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "Expect '{' before function body."); !ok {
			return ast.NoStmtID, false
		}
		if body, ok = p.parseBlockBody(); !ok {
			return ast.NoStmtID, false
		}
	}

	paramTypes := make([]types.Type, len(params))
	for i, prm := range params {
		paramTypes[i] = prm.Type
	}
	return p.arenas.Stmts.NewFn(p.spanFrom(start), ast.StmtFnData{
		Name:     name.Text,
		NameSpan: name.Span,
		Params:   params,
		Sig:      types.Function(name.Text, ret, paramTypes...),
		Body:     body,
		ExprBody: exprBody,
	}), true
}

func (p *Parser) parseStatement() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwBreak:
		return p.parseBreak()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwFor:
		return p.parseFor()
	case token.KwIf:
		return p.parseIf()
	case token.KwPrint:
		return p.parsePrint()
	case token.KwLoop, token.KwWhile, token.KwUntil:
		return p.parseLoop()
	case token.LBrace:
		start := p.advance().Span
		stmts, ok := p.parseBlockBody()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewBlock(p.spanFrom(start), stmts), true
	default:
		return p.parseExprStmt()
	}
}

// parseBlockBody разбирает операторы до '}' (открывающая скобка уже съедена).
// Ошибочные операторы пропускаются, как и на верхнем уровне.
func (p *Parser) parseBlockBody() ([]ast.StmtID, bool) {
	p.blockDepth++
	defer func() { p.blockDepth-- }()
	stmts := make([]ast.StmtID, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.opts.Enough() {
			return nil, false
		}
		id, ok := p.parseDeclaration()
		if !ok {
			p.synchronize()
			continue
		}
		stmts = append(stmts, id)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "Expect '}' after block."); !ok {
		return nil, false
	}
	return stmts, true
}

func (p *Parser) parseBreak() (ast.StmtID, bool) {
	kw := p.advance()
	if p.loopDepth == 0 {
		p.errAt(diag.SynBreakOutsideLoop, kw.Span, "Can only break inside of a loop.")
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "Expect ';' after break."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBreak(p.spanFrom(kw.Span)), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	if p.fnDepth == 0 {
		p.errAt(diag.SynReturnOutsideFn, kw.Span, "Can only return inside of a function.")
	}
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "Expect ';' after return value."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(kw.Span), value), true
}

// for (let name in iterable) body
func (p *Parser) parseFor() (ast.StmtID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen, diag.SynForBadHeader, "Expect '(' after 'for'."); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwLet, diag.SynForBadHeader, "Expect iteration bind after '('."); !ok {
		return ast.NoStmtID, false
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect bind name after 'let'.")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynForBadHeader, "Expect 'in' after iteration bind."); !ok {
		return ast.NoStmtID, false
	}
	iterable, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after iterable expression."); !ok {
		return ast.NoStmtID, false
	}
	p.loopDepth++
	body, ok := p.parseStatement()
	p.loopDepth--
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(start), ast.StmtForData{
		Name:     name.Text,
		NameSpan: name.Span,
		Iterable: iterable,
		Body:     body,
	}), true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	start := p.advance().Span
	cond, ok := p.parseParenCond("if")
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if _, ok := p.eat(token.KwElse); ok {
		if els, ok = p.parseStatement(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(start), cond, then, els), true
}

// print(expr);
func (p *Parser) parsePrint() (ast.StmtID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expect '(' before expression."); !ok {
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after expression."); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "Expect ';' after expression."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewPrint(p.spanFrom(start), value), true
}

// loop body | while (cond) body | until (cond) body.
// until хранит синтетическое отрицание условия.
func (p *Parser) parseLoop() (ast.StmtID, bool) {
	kw := p.advance()
	flavor := ast.LoopForever
	cond := ast.NoExprID
	switch kw.Kind {
	case token.KwWhile, token.KwUntil:
		c, ok := p.parseParenCond(kw.Text)
		if !ok {
			return ast.NoStmtID, false
		}
		cond = c
		flavor = ast.LoopWhile
		if kw.Kind == token.KwUntil {
			flavor = ast.LoopUntil
			cond = p.arenas.Exprs.NewUnary(p.arenas.Exprs.Get(c).Span, ast.UnaryNot, c, true)
		}
	}
	p.loopDepth++
	body, ok := p.parseStatement()
	p.loopDepth--
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(kw.Span), flavor, cond, body), true
}

func (p *Parser) parseParenCond(keyword string) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expect '(' after '"+keyword+"'."); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after condition."); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "Expect ';' after expression."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}
