package eval

import (
	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/sema"
	"zeron/internal/types"
)

func (in *Interpreter) defineNatives() {
	for _, bi := range sema.Builtins {
		fn := &Callable{Name: bi.Name, Sig: bi.Sig}
		switch bi.Name {
		case "clock":
			fn.Native = func(in *Interpreter, _ []Value) (Value, error) {
				return MakeInt(int32(in.rt.Now().Unix())), nil //nolint:gosec // секунды, как у JVM-рантайма
			}
		default:
			panic("eval: no native for builtin " + bi.Name)
		}
		in.globals.defineFunc(fn)
	}
}

// call looks the callee up the way the resolver did: variables first,
// then functions.
func (in *Interpreter) call(id ast.ExprID, data *ast.ExprCallData) (Value, error) {
	callee, err := in.variable(data.Callee, data.CalleeSpan)
	if err != nil {
		return callee, err
	}
	if callee.Kind != VKFunc {
		return Value{}, in.fail(diag.RunNotCallable, data.CalleeSpan, "Callee must be a function.")
	}
	args := make([]Value, len(data.Args))
	for i, a := range data.Args {
		if args[i], err = in.eval(a); err != nil {
			return Value{}, err
		}
	}
	fn := callee.Fn
	if fn.Arity() != len(args) {
		return Value{}, in.fail(diag.RunArityMismatch, data.CalleeSpan,
			"Expected %d arguments, but got %d instead.", fn.Arity(), len(args))
	}
	if inst, ok := in.instanceAt(id); ok {
		fn = fn.bound(inst)
	}
	return in.invoke(fn, args, data)
}

func (in *Interpreter) invoke(fn *Callable, args []Value, site *ast.ExprCallData) (Value, error) {
	if fn.Native != nil {
		return fn.Native(in, args)
	}
	if len(in.stack) >= in.maxDepth {
		return Value{}, in.fail(diag.RunStackOverflow, site.CalleeSpan, "Stack overflow.")
	}
	if err := in.ctx.Err(); err != nil {
		return Value{}, err
	}

	env := NewEnv(fn.Env)
	for i, name := range fn.Params {
		t := types.Infer()
		if i < fn.Sig.Arity() {
			t = fn.Sig.Param(i)
		}
		env.define(name, Bind{Value: args[i], Type: t, Initialized: true, Final: true})
	}

	name := fn.Name
	if name == "" {
		name = fn.String()
	}
	in.stack = append(in.stack, BacktraceFrame{FuncName: name, Span: site.CalleeSpan})
	prevInst, prevRet := in.inst, in.ret
	in.inst = fn.Inst
	fl, err := in.execBlock(fn.Body, env)
	ret := in.ret
	in.inst, in.ret = prevInst, prevRet
	in.stack = in.stack[:len(in.stack)-1]
	if err != nil {
		return Value{}, err
	}
	if fl != flowReturn {
		return MakeUnit(), nil
	}
	return ret, nil
}
