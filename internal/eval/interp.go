package eval

import (
	"context"
	"errors"
	"fmt"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/sema"
	"zeron/internal/source"
	"zeron/internal/trace"
	"zeron/internal/types"
)

// DefaultMaxDepth bounds nested calls.
const DefaultMaxDepth = 2048

// Options configure an Interpreter.
type Options struct {
	Runtime  Runtime // nil: DefaultRuntime
	MaxDepth int     // 0: DefaultMaxDepth
}

// Interpreter executes resolved files. Globals survive between Exec
// calls, which is what the REPL relies on.
type Interpreter struct {
	b        *ast.Builder
	rt       Runtime
	maxDepth int

	res     sema.Result
	globals *Env
	env     *Env
	inst    *sema.Instance
	stack   []BacktraceFrame
	ret     Value
	ctx     context.Context
}

// flow tells a statement's caller how control leaves it.
type flow uint8

const (
	flowNext flow = iota
	flowBreak
	flowReturn
)

// New builds an interpreter with the builtins defined.
func New(b *ast.Builder, opts Options) *Interpreter {
	in := &Interpreter{
		b:        b,
		rt:       opts.Runtime,
		maxDepth: opts.MaxDepth,
		globals:  NewEnv(nil),
	}
	if in.rt == nil {
		in.rt = DefaultRuntime{}
	}
	if in.maxDepth <= 0 {
		in.maxDepth = DefaultMaxDepth
	}
	in.env = in.globals
	in.defineNatives()
	return in
}

// Run executes file once; res must be its successful resolution.
func Run(ctx context.Context, b *ast.Builder, file ast.FileID, res sema.Result, opts Options) error {
	return New(b, opts).Exec(ctx, file, res)
}

// Exec runs the top-level statements of file in order.
func (in *Interpreter) Exec(ctx context.Context, file ast.FileID, res sema.Result) (err error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "eval", trace.ParentFromContext(ctx))
	defer func() {
		if err != nil {
			var re *RuntimeError
			if errors.As(err, &re) {
				span.WithExtra("error", re.Code.ID())
			}
		}
		span.End("")
	}()

	f := in.b.Files.Get(file)
	if f == nil {
		return fmt.Errorf("eval: unknown file %d", file)
	}
	in.res = res
	in.ctx = ctx
	in.env = in.globals
	in.inst = nil
	in.stack = in.stack[:0]
	for _, id := range f.Stmts {
		if _, err := in.exec(id); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(id ast.StmtID) (flow, error) {
	st := in.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		data, _ := in.b.Stmts.Block(id)
		return in.execBlock(data.Stmts, NewEnv(in.env))

	case ast.StmtBreak:
		return flowBreak, nil

	case ast.StmtExpr:
		data, _ := in.b.Stmts.Expr(id)
		_, err := in.eval(data.Expr)
		return flowNext, err

	case ast.StmtFor:
		data, _ := in.b.Stmts.For(id)
		return in.forRange(data)

	case ast.StmtFn:
		data, _ := in.b.Stmts.Fn(id)
		params := make([]string, len(data.Params))
		for i, p := range data.Params {
			params[i] = p.Name
		}
		in.env.defineFunc(&Callable{
			Name:   data.Name,
			Params: params,
			Body:   data.Body,
			Sig:    data.Sig,
			Env:    in.env,
			Inst:   in.inst,
		})
		return flowNext, nil

	case ast.StmtIf:
		data, _ := in.b.Stmts.If(id)
		ok, err := in.condition(data.Cond)
		switch {
		case err != nil:
			return flowNext, err
		case ok:
			return in.exec(data.Then)
		case data.Else.IsValid():
			return in.exec(data.Else)
		}
		return flowNext, nil

	case ast.StmtPrint:
		data, _ := in.b.Stmts.Print(id)
		v, err := in.eval(data.Expr)
		if err != nil {
			return flowNext, err
		}
		_, err = fmt.Fprintln(in.rt.Stdout(), v.String())
		return flowNext, err

	case ast.StmtReturn:
		data, _ := in.b.Stmts.Return(id)
		v := MakeUnit()
		if data.Value.IsValid() {
			var err error
			if v, err = in.eval(data.Value); err != nil {
				return flowNext, err
			}
		}
		in.ret = v
		return flowReturn, nil

	case ast.StmtLet:
		data, _ := in.b.Stmts.Let(id)
		return flowNext, in.let(data)

	case ast.StmtWhile:
		data, _ := in.b.Stmts.While(id)
		return in.loop(data)
	}
	panic(fmt.Sprintf("eval: unhandled statement kind %s", st.Kind))
}

func (in *Interpreter) execBlock(stmts []ast.StmtID, env *Env) (flow, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()
	for _, id := range stmts {
		fl, err := in.exec(id)
		if err != nil || fl != flowNext {
			return fl, err
		}
	}
	return flowNext, nil
}

func (in *Interpreter) let(data *ast.StmtLetData) error {
	b := Bind{Value: MakeNull(), Type: data.Type, Final: data.Final}
	if data.Init.IsValid() {
		v, err := in.eval(data.Init)
		if err != nil {
			return err
		}
		b.Value = v
		b.Initialized = true
		if b.Type.IsInfer() {
			b.Type = in.typeOf(data.Init)
		}
	}
	in.env.define(data.Name, b)
	return nil
}

func (in *Interpreter) loop(data *ast.StmtWhileData) (flow, error) {
	for {
		if err := in.ctx.Err(); err != nil {
			return flowNext, err
		}
		if data.Flavor != ast.LoopForever {
			ok, err := in.condition(data.Cond)
			if err != nil || !ok {
				return flowNext, err
			}
		}
		fl, err := in.exec(data.Body)
		if err != nil {
			return flowNext, err
		}
		switch fl {
		case flowBreak:
			return flowNext, nil
		case flowReturn:
			return flowReturn, nil
		}
	}
}

// forRange binds a fresh final loop variable for every element.
func (in *Interpreter) forRange(data *ast.StmtForData) (flow, error) {
	it, err := in.eval(data.Iterable)
	if err != nil {
		return flowNext, err
	}
	if it.Kind != VKRange {
		return flowNext, in.fail(diag.RunNotIterable, in.b.Exprs.Get(data.Iterable).Span, "Only ranges can be iterated.")
	}
	r := it.Range
	env := NewEnv(in.env)
	// int64: шаг за Hi не должен переполнять int32
	for i := int64(r.Lo); (r.Step > 0 && i <= int64(r.Hi)) || (r.Step < 0 && i >= int64(r.Hi)); i += int64(r.Step) {
		if err := in.ctx.Err(); err != nil {
			return flowNext, err
		}
		env.define(data.Name, Bind{Value: MakeInt(int32(i)), Type: types.Int(), Initialized: true, Final: true}) //nolint:gosec // i is between Lo and Hi
		fl, err := in.execIn(data.Body, env)
		if err != nil {
			return flowNext, err
		}
		switch fl {
		case flowBreak:
			return flowNext, nil
		case flowReturn:
			return flowReturn, nil
		}
	}
	return flowNext, nil
}

func (in *Interpreter) execIn(id ast.StmtID, env *Env) (flow, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()
	return in.exec(id)
}

func (in *Interpreter) condition(id ast.ExprID) (bool, error) {
	v, err := in.eval(id)
	if err != nil {
		return false, err
	}
	return in.ensureBool(v, in.b.Exprs.Get(id).Span)
}

func (in *Interpreter) ensureBool(v Value, span source.Span) (bool, error) {
	if v.Kind != VKBool {
		return false, in.fail(diag.RunTypeError, span, "Operand must be a boolean.")
	}
	return v.Bool, nil
}

// typeOf is the resolved static type of id in the current body.
func (in *Interpreter) typeOf(id ast.ExprID) types.Type {
	if in.inst != nil {
		if t, ok := in.inst.TypeOf(id); ok {
			return t
		}
	}
	return in.b.Exprs.Get(id).Type.Get()
}

// instanceAt is the lambda instance the resolver picked for a call or
// argument site.
func (in *Interpreter) instanceAt(site ast.ExprID) (*sema.Instance, bool) {
	calls := in.res.CallSites
	if in.inst != nil {
		calls = in.inst.Calls
	}
	idx, ok := calls[site]
	if !ok {
		return nil, false
	}
	return &in.res.Instances[idx], true
}
