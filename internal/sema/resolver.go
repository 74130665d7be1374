package sema

import (
	"context"
	"errors"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/source"
	"zeron/internal/symbols"
	"zeron/internal/trace"
	"zeron/internal/types"
)

// Options configure a resolution pass over a file.
type Options struct {
	Reporter diag.Reporter
	Hints    symbols.Hints
}

// Result stores what the resolver produced. Expression types of code
// outside unannotated lambdas live in the AST type cells.
type Result struct {
	Table     *symbols.Table
	Instances []Instance
	// CallSites maps top-level lambda calls to their Instance.
	CallSites map[ast.ExprID]int
	Frames    []Frame
	Err       *ResolutionError
}

// OK reports whether the pass finished without error.
func (r Result) OK() bool { return r.Err == nil }

// Resolve types the file in place. It stops at the first error.
func Resolve(ctx context.Context, b *ast.Builder, file ast.FileID, opts Options) Result {
	res := Result{
		Table:     symbols.NewTable(opts.Hints),
		CallSites: make(map[ast.ExprID]int),
	}
	f := b.Files.Get(file)
	if f == nil {
		return res
	}
	r := newResolver(b, &res)
	main := r.openFrame()
	if !r.file(ctx, f, opts.Reporter) {
		return res
	}
	if err := r.table.Verify(); err != nil {
		panic(err)
	}
	r.closeFrame(main, Frame{Name: MainFrame})
	return res
}

func newResolver(b *ast.Builder, res *Result) *resolver {
	r := &resolver{
		b:      b,
		table:  res.Table,
		res:    res,
		cache:  make(map[instKey]int),
		active: make(map[instKey]bool),
		tracer: trace.Nop,
	}
	if err := r.declareBuiltins(); err != nil {
		panic(err)
	}
	return r
}

// file resolves top-level statements until the first error, which is
// stored in res.Err and reported.
func (r *resolver) file(ctx context.Context, f *ast.File, rep diag.Reporter) bool {
	r.tracer = trace.FromContext(ctx)
	span := trace.Begin(r.tracer, trace.ScopePass, "resolve", trace.ParentFromContext(ctx))
	defer span.End("")
	r.parent = span.ID()

	r.res.Err = nil
	for _, id := range f.Stmts {
		if err := r.stmt(id); err != nil {
			r.res.Err = asResolutionError(err)
			diag.ReportError(rep, r.res.Err.Code, r.res.Err.Span, r.res.Err.Error()).Emit()
			span.WithExtra("error", r.res.Err.Code.ID())
			return false
		}
	}
	return true
}

type resolver struct {
	b     *ast.Builder
	table *symbols.Table
	res   *Result

	// стек функций и лямбд: return складывает тип в верхний
	fns []*fnContext
	// inst != nil: типы пишутся в инстанс, а не в AST
	inst *Instance

	cache   map[instKey]int
	active  map[instKey]bool
	// window != nil внутри инстанцируемой лямбды
	window  *captureWindow
	claimed []bool // retired bindings already owned by a frame

	tracer trace.Tracer
	parent uint64
}

type fnContext struct {
	// ret starts as the declared return type; Infer is seeded by the first return.
	ret types.Type
}

// setType records the resolved type of id.
func (r *resolver) setType(id ast.ExprID, t types.Type) error {
	e := r.b.Exprs.Get(id)
	if t.IsInfer() {
		return errorf(diag.SemaUninferredType, e.Span, "Cannot infer the type of this expression.")
	}
	if r.inst != nil {
		r.inst.Types[id] = t
		return nil
	}
	if err := e.Type.Set(t); err != nil {
		if errors.Is(err, ast.ErrTypeFrozen) {
			return errorf(diag.SemaInvalidState, e.Span, "Expression was already resolved as %s.", e.Type.Get())
		}
		return err
	}
	return nil
}

func (r *resolver) span(id ast.ExprID) source.Span {
	return r.b.Exprs.Get(id).Span
}

func (r *resolver) endScope() {
	if err := r.table.EndScope(); err != nil {
		panic(err)
	}
}

func (r *resolver) declareLocal(decl symbols.DeclSite, name string, t types.Type) error {
	if _, err := r.table.Declare(decl, name, t, true); err != nil {
		return symErr(err, decl.Span)
	}
	return symErr(r.table.Define(name), decl.Span)
}
