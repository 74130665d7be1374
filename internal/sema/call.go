package sema

import (
	"fmt"
	"strings"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/symbols"
	"zeron/internal/trace"
	"zeron/internal/types"
)

// call resolves callee(args...). A same-named variable shadows a function.
func (r *resolver) call(id ast.ExprID, call *ast.ExprCallData) (types.Type, error) {
	sig, local, err := r.callee(call)
	if err != nil {
		return types.Infer(), err
	}
	if sig.Arity() != len(call.Args) {
		return types.Infer(), &ResolutionError{
			Code: diag.SemaArityMismatch, Span: call.CalleeSpan, Name: call.Callee,
			Msg: fmt.Sprintf("Expected %d arguments, found %d.", sig.Arity(), len(call.Args)),
		}
	}

	if !sig.Return().IsInfer() {
		for i, arg := range call.Args {
			if _, err := r.exprExpecting(arg, sig.Param(i)); err != nil {
				return types.Infer(), err
			}
		}
		return sig.Return(), nil
	}

	if !local {
		// функция ещё разбирается: её тип возврата неизвестен
		return types.Infer(), &ResolutionError{
			Code: diag.SemaUninferredType, Span: call.CalleeSpan, Name: call.Callee,
			Msg: "Cannot infer the return type of a function from inside its own body.",
		}
	}

	args := make([]types.Type, len(call.Args))
	for i, arg := range call.Args {
		if args[i], err = r.expr(arg); err != nil {
			return types.Infer(), err
		}
	}
	site, ok := r.lambdaOf(lambdaRef{name: call.Callee})
	if !ok {
		return types.Infer(), &ResolutionError{
			Code: diag.SemaUninferredType, Span: call.CalleeSpan, Name: call.Callee,
			Msg: "Cannot infer the signature of a lambda that is not bound by let.",
		}
	}
	idx, err := r.instantiate(id, site, args)
	if err != nil {
		return types.Infer(), err
	}
	return r.res.Instances[idx].Sig.Return(), nil
}

func (r *resolver) callee(call *ast.ExprCallData) (sig types.Type, local bool, err error) {
	if b, lerr := r.lookup(call.Callee); lerr == nil {
		if !b.Initialized {
			return sig, true, &ResolutionError{
				Code: diag.SemaSelfReferenceInInitializer, Span: call.CalleeSpan, Name: call.Callee,
				Msg: "Can't read local variable in its own initializer.",
			}
		}
		if b.Type.Kind() != types.KindFunction {
			return sig, true, &ResolutionError{
				Code: diag.SemaCalleeNotCallable, Span: call.CalleeSpan, Name: call.Callee,
				Msg: "Callee is not a function, it has type " + b.Type.String() + ".",
			}
		}
		return b.Type, true, nil
	}
	f, ferr := r.table.LookupFunction(call.Callee)
	if ferr != nil {
		return sig, false, symErr(ferr, call.CalleeSpan)
	}
	return f.Type, false, nil
}

// lambdaRef is either an expression or a binding name.
type lambdaRef struct {
	expr ast.ExprID
	name string
}

// lambdaSite is a lambda literal and the LVT length where it was bound.
// Its body sees only the locals below captures.
type lambdaSite struct {
	lambda   ast.ExprID
	captures int
}

// lambdaOf follows let initializers from ref back to a lambda literal:
// f where let f = x -> ...; also through let g = f; and groupings.
func (r *resolver) lambdaOf(cur lambdaRef) (lambdaSite, bool) {
	seen := make(map[string]bool)
	// литерал на месте: видны все живые локалы
	captures := r.table.NumLocals()
	for {
		if cur.expr.IsValid() {
			if _, ok := r.b.Exprs.Lambda(cur.expr); ok {
				return lambdaSite{lambda: cur.expr, captures: captures}, true
			}
			if g, ok := r.b.Exprs.Group(cur.expr); ok {
				cur = lambdaRef{expr: g.Inner}
				continue
			}
			v, ok := r.b.Exprs.Variable(cur.expr)
			if !ok {
				return lambdaSite{}, false
			}
			cur = lambdaRef{name: v.Name}
		}
		if seen[cur.name] {
			return lambdaSite{}, false
		}
		seen[cur.name] = true
		b, err := r.lookup(cur.name)
		if err != nil || !b.Decl.Init.IsValid() {
			return lambdaSite{}, false
		}
		captures = 0
		if !b.IsGlobal() {
			captures = b.Slot
		}
		cur = lambdaRef{expr: b.Decl.Init}
	}
}

type instKey struct {
	lambda ast.ExprID
	params string
}

// captureWindow hides the locals of an instantiation call site from the
// lambda body: slots in [captures, base) belong to the caller. Nested
// instantiations keep hiding what their parents hide.
type captureWindow struct {
	captures, base int
	parent         *captureWindow
}

func (w *captureWindow) hides(b symbols.Binding) bool {
	if b.IsGlobal() {
		return false
	}
	for ; w != nil; w = w.parent {
		if b.Slot >= w.captures && b.Slot < w.base {
			return true
		}
	}
	return false
}

// lookup is Table.Lookup restricted to what the current lambda body sees.
func (r *resolver) lookup(name string) (symbols.Binding, error) {
	b, err := r.table.Lookup(name)
	if err != nil {
		return b, err
	}
	if r.window.hides(b) {
		return symbols.Binding{}, &symbols.Error{
			Code: diag.SemaUnknownSymbol, Name: name,
			Msg: "Not visible where the lambda is declared.",
		}
	}
	return b, nil
}

// instantiate types the body of a lambda for concrete parameter types. The
// lambda declaration is not touched; types go into a new Instance.
// Equal parameter tuples share one Instance.
func (r *resolver) instantiate(site ast.ExprID, ls lambdaSite, params []types.Type) (int, error) {
	lam := ls.lambda
	key := instKey{lambda: lam, params: types.DescriptorList(params)}
	if idx, ok := r.cache[key]; ok {
		r.recordCall(site, idx)
		return idx, nil
	}
	if r.active[key] {
		return 0, errorf(diag.SemaUninferredType, r.span(site),
			"Cannot infer the return type of a lambda that calls itself.")
	}
	r.active[key] = true
	defer delete(r.active, key)

	data, _ := r.b.Exprs.Lambda(lam)
	if len(data.Params) != len(params) {
		return 0, errorf(diag.SemaArityMismatch, r.span(site),
			"Expected %d arguments, found %d.", len(data.Params), len(params))
	}

	inst := &Instance{
		Lambda: lam,
		Types:  make(map[ast.ExprID]types.Type),
		Calls:  make(map[ast.ExprID]int),
	}
	outer, outerWindow := r.inst, r.window
	r.inst = inst
	r.window = &captureWindow{captures: ls.captures, base: r.table.NumLocals(), parent: outerWindow}
	ret, frame, err := r.lambdaBody(lam, data, params, types.Infer())
	r.inst, r.window = outer, outerWindow
	if err != nil {
		return 0, err
	}
	inst.Sig = types.Lambda(ret, params...)
	inst.Frame = frame
	inst.Types[lam] = inst.Sig

	r.res.Instances = append(r.res.Instances, *inst)
	idx := len(r.res.Instances) - 1
	r.cache[key] = idx
	r.recordCall(site, idx)
	trace.Point(r.tracer, trace.ScopeNode, "instantiate", inst.Sig.String(), r.parent)
	return idx, nil
}

func (r *resolver) recordCall(site ast.ExprID, idx int) {
	if r.inst != nil {
		r.inst.Calls[site] = idx
		return
	}
	r.res.CallSites[site] = idx
}

// lambdaAgainst resolves a lambda literal stored where sig is expected.
// The body is typed where the lambda stands.
func (r *resolver) lambdaAgainst(id ast.ExprID, lam *ast.ExprLambdaData, sig types.Type) (types.Type, error) {
	if len(lam.Params) != sig.Arity() {
		return types.Infer(), errorf(diag.SemaArityMismatch, r.span(id),
			"Expected a lambda with %d parameters, found %d.", sig.Arity(), len(lam.Params))
	}
	if _, _, err := r.lambdaBody(id, lam, sig.Params(), sig.Return()); err != nil {
		return types.Infer(), err
	}
	return sig, r.setType(id, sig)
}

// lambdaBody opens a frame and a scope, binds the parameters to params
// and resolves the body.
func (r *resolver) lambdaBody(id ast.ExprID, lam *ast.ExprLambdaData, params []types.Type, ret types.Type) (types.Type, int, error) {
	mark := r.openFrame()
	r.table.BeginScope()
	for i, p := range lam.Params {
		if err := r.declareLocal(symbols.DeclSite{Span: p.Span}, p.Name, params[i]); err != nil {
			return types.Infer(), 0, err
		}
	}
	got, err := r.body(lam.Body, ret)
	if err != nil {
		return types.Infer(), 0, err
	}
	r.endScope()
	frame := r.closeFrame(mark, Frame{
		Name:   lambdaFrameName(params),
		Lambda: id,
		Sig:    types.Lambda(got, params...),
	})
	return got, frame, nil
}

func lambdaFrameName(params []types.Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return "<lambda(" + strings.Join(parts, ", ") + ")>"
}
