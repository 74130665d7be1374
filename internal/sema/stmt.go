package sema

import (
	"fmt"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/symbols"
	"zeron/internal/trace"
	"zeron/internal/types"
)

func (r *resolver) stmt(id ast.StmtID) error {
	st := r.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		data, _ := r.b.Stmts.Block(id)
		r.table.BeginScope()
		if err := r.stmts(data.Stmts); err != nil {
			return err
		}
		r.endScope()
		return nil
	case ast.StmtBreak:
		// вне цикла break отвергает парсер
		return nil
	case ast.StmtExpr:
		data, _ := r.b.Stmts.Expr(id)
		_, err := r.expr(data.Expr)
		return err
	case ast.StmtFor:
		data, _ := r.b.Stmts.For(id)
		return r.forStmt(id, data)
	case ast.StmtFn:
		data, _ := r.b.Stmts.Fn(id)
		return r.fnDecl(id, data)
	case ast.StmtIf:
		data, _ := r.b.Stmts.If(id)
		if err := r.condition(data.Cond); err != nil {
			return err
		}
		if err := r.stmt(data.Then); err != nil {
			return err
		}
		if data.Else.IsValid() {
			return r.stmt(data.Else)
		}
		return nil
	case ast.StmtPrint:
		data, _ := r.b.Stmts.Print(id)
		_, err := r.expr(data.Expr)
		return err
	case ast.StmtReturn:
		data, _ := r.b.Stmts.Return(id)
		return r.returnStmt(id, data)
	case ast.StmtLet:
		data, _ := r.b.Stmts.Let(id)
		return r.let(id, data)
	case ast.StmtWhile:
		data, _ := r.b.Stmts.While(id)
		// until хранит уже отрицание, loop условия не имеет
		if data.Cond.IsValid() {
			if err := r.condition(data.Cond); err != nil {
				return err
			}
		}
		return r.stmt(data.Body)
	}
	panic(fmt.Sprintf("sema: unhandled statement kind %s", st.Kind))
}

func (r *resolver) stmts(ids []ast.StmtID) error {
	for _, id := range ids {
		if err := r.stmt(id); err != nil {
			return err
		}
	}
	return nil
}

// let name[: T] [= init];
// The name is defined last, so the initializer cannot read it.
func (r *resolver) let(id ast.StmtID, let *ast.StmtLetData) error {
	decl := symbols.DeclSite{Stmt: id, Init: let.Init, Span: let.NameSpan}
	if _, err := r.table.Declare(decl, let.Name, let.Type, let.Final); err != nil {
		return symErr(err, let.NameSpan)
	}

	declared := let.Type
	if !let.Init.IsValid() && !declared.IsInfer() && !declared.IsNullable() {
		return errorf(diag.SemaMissingInitializer, let.NameSpan,
			"A variable with no initializer must be of a nullable type.")
	}

	resolved := declared
	if let.Init.IsValid() {
		got, err := r.exprExpecting(let.Init, declared)
		if err != nil {
			return err
		}
		resolved = types.Assignable(declared, got)
		if declared.IsInfer() {
			if err := r.table.SetResolvedType(let.Name, resolved); err != nil {
				return symErr(err, let.NameSpan)
			}
		}
	}
	if resolved.IsInfer() {
		return errorf(diag.SemaUninferredType, let.NameSpan, "Cannot infer type from declaration.")
	}
	return symErr(r.table.Define(let.Name), let.NameSpan)
}

// fnDecl declares the signature before the body so the body may recurse.
func (r *resolver) fnDecl(id ast.StmtID, fn *ast.StmtFnData) error {
	sp := trace.Begin(r.tracer, trace.ScopeNode, "fn "+fn.Name, r.parent)
	defer sp.End("")

	decl := symbols.DeclSite{Stmt: id, Span: fn.NameSpan}
	if err := r.table.DeclareFunction(decl, fn.Name, fn.Sig); err != nil {
		return symErr(err, fn.NameSpan)
	}

	mark := r.openFrame()
	r.table.BeginScope()
	params := fn.Sig.Params()
	for i, p := range fn.Params {
		if err := r.declareLocal(symbols.DeclSite{Stmt: id, Span: p.Span}, p.Name, params[i]); err != nil {
			return err
		}
	}
	ret, err := r.body(fn.Body, fn.Sig.Return())
	if err != nil {
		return err
	}
	if fn.Sig.Return().IsInfer() {
		if err := r.table.SetResolvedReturnType(fn.Name, ret); err != nil {
			return symErr(err, fn.NameSpan)
		}
	}
	r.endScope()
	r.closeFrame(mark, Frame{Name: fn.Name, Stmt: id, Sig: fn.Sig.WithReturn(ret)})
	sp.WithExtra("sig", fn.Sig.WithReturn(ret).String())
	return nil
}

// body resolves a function or lambda body and returns its return type:
// the declared one, else the first return's type, else Unit.
func (r *resolver) body(stmts []ast.StmtID, declared types.Type) (types.Type, error) {
	ctx := &fnContext{ret: declared}
	r.fns = append(r.fns, ctx)
	defer func() { r.fns = r.fns[:len(r.fns)-1] }()

	if err := r.stmts(stmts); err != nil {
		return types.Infer(), err
	}
	return types.OrElse(ctx.ret, types.Unit()), nil
}

// returnStmt folds the returned type into the enclosing body: the first
// return seeds an inferred type, every later one must fit it.
func (r *resolver) returnStmt(id ast.StmtID, ret *ast.StmtReturnData) error {
	sp := r.b.Stmts.Get(id).Span
	if len(r.fns) == 0 {
		return errorf(diag.SemaInvalidState, sp, "Can only return inside of a function.")
	}
	ctx := r.fns[len(r.fns)-1]

	got := types.Unit()
	if ret.Value.IsValid() {
		var err error
		if got, err = r.exprExpecting(ret.Value, ctx.ret); err != nil {
			return err
		}
	} else if !types.Accepts(ctx.ret, got) {
		return mismatch(sp, ctx.ret, got)
	}
	ctx.ret = types.Assignable(ctx.ret, got)
	return nil
}

// for (let name in iterable) body: iterable must be a one-argument generic.
func (r *resolver) forStmt(id ast.StmtID, data *ast.StmtForData) error {
	r.table.BeginScope()
	it, err := r.expr(data.Iterable)
	if err != nil {
		return err
	}
	if it.Kind() != types.KindGeneric || len(it.Args()) != 1 {
		return errorf(diag.SemaNotIterable, r.span(data.Iterable), "Can only iterate over an Iterable, found %s.", it)
	}
	decl := symbols.DeclSite{Stmt: id, Span: data.NameSpan}
	if err := r.declareLocal(decl, data.Name, it.Args()[0]); err != nil {
		return err
	}
	if err := r.stmt(data.Body); err != nil {
		return err
	}
	r.endScope()
	return nil
}

func (r *resolver) condition(id ast.ExprID) error {
	t, err := r.expr(id)
	if err != nil {
		return err
	}
	if t.Kind() != types.KindBoolean {
		return errorf(diag.SemaNotBoolean, r.span(id), "Condition must be a Boolean, found %s.", t)
	}
	return nil
}
