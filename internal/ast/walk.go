package ast

// Visitor receives every expression of a walk. Returning false skips the
// expression's children.
type Visitor func(id ExprID, e *Expr) bool

// WalkOptions tunes a walk.
type WalkOptions struct {
	// SkipLambdaBodies leaves lambda bodies unvisited; they are typed per
	// call site, not in place.
	SkipLambdaBodies bool
}

// WalkFile visits every expression in the file in source order.
func (b *Builder) WalkFile(file FileID, opts WalkOptions, v Visitor) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	for _, st := range f.Stmts {
		b.WalkStmt(st, opts, v)
	}
}

// WalkStmt visits every expression below a statement.
func (b *Builder) WalkStmt(id StmtID, opts WalkOptions, v Visitor) {
	st := b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case StmtBlock:
		blk, _ := b.Stmts.Block(id)
		b.walkStmts(blk.Stmts, opts, v)
	case StmtBreak:
	case StmtExpr:
		data, _ := b.Stmts.Expr(id)
		b.WalkExpr(data.Expr, opts, v)
	case StmtFor:
		data, _ := b.Stmts.For(id)
		b.WalkExpr(data.Iterable, opts, v)
		b.WalkStmt(data.Body, opts, v)
	case StmtFn:
		data, _ := b.Stmts.Fn(id)
		b.walkStmts(data.Body, opts, v)
	case StmtIf:
		data, _ := b.Stmts.If(id)
		b.WalkExpr(data.Cond, opts, v)
		b.WalkStmt(data.Then, opts, v)
		b.WalkStmt(data.Else, opts, v)
	case StmtPrint:
		data, _ := b.Stmts.Print(id)
		b.WalkExpr(data.Expr, opts, v)
	case StmtReturn:
		data, _ := b.Stmts.Return(id)
		b.WalkExpr(data.Value, opts, v)
	case StmtLet:
		data, _ := b.Stmts.Let(id)
		b.WalkExpr(data.Init, opts, v)
	case StmtWhile:
		data, _ := b.Stmts.While(id)
		b.WalkExpr(data.Cond, opts, v)
		b.WalkStmt(data.Body, opts, v)
	}
}

func (b *Builder) walkStmts(ids []StmtID, opts WalkOptions, v Visitor) {
	for _, id := range ids {
		b.WalkStmt(id, opts, v)
	}
}

// WalkExpr visits an expression and, unless v declines, its children.
func (b *Builder) WalkExpr(id ExprID, opts WalkOptions, v Visitor) {
	e := b.Exprs.Get(id)
	if e == nil || !v(id, e) {
		return
	}
	switch e.Kind {
	case ExprAssign:
		data, _ := b.Exprs.Assign(id)
		b.WalkExpr(data.Value, opts, v)
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		b.WalkExpr(data.Left, opts, v)
		b.WalkExpr(data.Right, opts, v)
	case ExprCall:
		data, _ := b.Exprs.Call(id)
		for _, a := range data.Args {
			b.WalkExpr(a, opts, v)
		}
	case ExprGroup:
		data, _ := b.Exprs.Group(id)
		b.WalkExpr(data.Inner, opts, v)
	case ExprIf:
		data, _ := b.Exprs.If(id)
		b.WalkExpr(data.Cond, opts, v)
		b.WalkExpr(data.Then, opts, v)
		b.WalkExpr(data.Else, opts, v)
	case ExprLambda:
		if !opts.SkipLambdaBodies {
			data, _ := b.Exprs.Lambda(id)
			b.walkStmts(data.Body, opts, v)
		}
	case ExprLogical:
		data, _ := b.Exprs.Logical(id)
		b.WalkExpr(data.Left, opts, v)
		b.WalkExpr(data.Right, opts, v)
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		b.WalkExpr(data.Operand, opts, v)
	case ExprLit, ExprVariable:
	}
}
