package sema

import (
	"fmt"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/types"
)

// expr resolves id and records its type.
func (r *resolver) expr(id ast.ExprID) (types.Type, error) {
	t, err := r.exprType(id)
	if err != nil {
		return types.Infer(), err
	}
	return t, r.setType(id, t)
}

func (r *resolver) exprType(id ast.ExprID) (types.Type, error) {
	e := r.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprAssign:
		data, _ := r.b.Exprs.Assign(id)
		b, err := r.lookup(data.Name)
		if err != nil {
			return types.Infer(), symErr(err, data.NameSpan)
		}
		if isOpenLambda(b.Type) {
			// вызовы f типизируются по лямбде из let, подмена её сломала бы их
			return types.Infer(), errorf(diag.SemaTypeMismatch, data.NameSpan,
				"Cannot reassign '%s': its lambda has no declared signature.", data.Name)
		}
		// присваивание само является выражением с типом значения
		return r.exprExpecting(data.Value, b.Type)

	case ast.ExprBinary:
		data, _ := r.b.Exprs.Binary(id)
		return r.binary(data)

	case ast.ExprCall:
		data, _ := r.b.Exprs.Call(id)
		return r.call(id, data)

	case ast.ExprGroup:
		data, _ := r.b.Exprs.Group(id)
		return r.expr(data.Inner)

	case ast.ExprIf:
		data, _ := r.b.Exprs.If(id)
		if err := r.condition(data.Cond); err != nil {
			return types.Infer(), err
		}
		then, err := r.expr(data.Then)
		if err != nil {
			return types.Infer(), err
		}
		els, err := r.expr(data.Else)
		if err != nil {
			return types.Infer(), err
		}
		if _, ok := types.CommonParent(then, els); !ok {
			return types.Infer(), errorf(diag.SemaTypeMismatch, e.Span,
				"Branches of if expression differ: %s and %s.", then, els)
		}
		return then, nil

	case ast.ExprLambda:
		// сигнатура станет известна на месте вызова
		data, _ := r.b.Exprs.Lambda(id)
		return openLambda(len(data.Params)), nil

	case ast.ExprLit:
		data, _ := r.b.Exprs.Literal(id)
		return data.Kind.Type(), nil

	case ast.ExprLogical:
		data, _ := r.b.Exprs.Logical(id)
		if _, err := r.expr(data.Left); err != nil {
			return types.Infer(), err
		}
		if _, err := r.expr(data.Right); err != nil {
			return types.Infer(), err
		}
		return types.Boolean(), nil

	case ast.ExprUnary:
		// not проверяется вычислителем, статический тип не меняется
		data, _ := r.b.Exprs.Unary(id)
		return r.expr(data.Operand)

	case ast.ExprVariable:
		data, _ := r.b.Exprs.Variable(id)
		return r.variable(data.Name, e)
	}
	panic(fmt.Sprintf("sema: unhandled expression kind %s", e.Kind))
}

func (r *resolver) variable(name string, e *ast.Expr) (types.Type, error) {
	if b, err := r.lookup(name); err == nil {
		if !b.Initialized {
			return types.Infer(), &ResolutionError{
				Code: diag.SemaSelfReferenceInInitializer, Span: e.Span, Name: name,
				Msg: "Can't read local variable in its own initializer.",
			}
		}
		return b.Type, nil
	}
	// функция как значение
	f, err := r.table.LookupFunction(name)
	if err != nil {
		return types.Infer(), symErr(err, e.Span)
	}
	return f.Type, nil
}

// binary unifies both operands; comparisons yield Boolean.
func (r *resolver) binary(data *ast.ExprBinaryData) (types.Type, error) {
	left, err := r.expr(data.Left)
	if err != nil {
		return types.Infer(), err
	}
	right, err := r.expr(data.Right)
	if err != nil {
		return types.Infer(), err
	}
	t, ok := types.Exact(left, right)
	if !ok {
		return types.Infer(), errorf(diag.SemaTypeMismatch, data.OpSpan,
			"Types are not exact: %s %s %s.", left, data.Op, right)
	}
	if t.Kind() == types.KindNever && !t.IsNullable() {
		return types.Infer(), errorf(diag.SemaUninferredType, data.OpSpan,
			"Cannot unify %s and %s.", left, right)
	}
	if data.Op.IsComparison() {
		return types.Boolean(), nil
	}
	return t, nil
}

// exprExpecting resolves id where a value of type expected is stored:
// a let initializer, an assigned value, an argument or a returned value.
func (r *resolver) exprExpecting(id ast.ExprID, expected types.Type) (types.Type, error) {
	if isClosedFunction(expected) {
		if lam, ok := r.b.Exprs.Lambda(id); ok {
			return r.lambdaAgainst(id, lam, expected)
		}
	}
	got, err := r.expr(id)
	if err != nil {
		return got, err
	}
	if isOpenLambda(got) && isClosedFunction(expected) && got.Arity() == expected.Arity() {
		// лямбда из переменной: инстанцируем по ожидаемой сигнатуре
		if site, ok := r.lambdaOf(lambdaRef{expr: id}); ok {
			idx, err := r.instantiate(id, site, expected.Params())
			if err != nil {
				return got, err
			}
			got = r.res.Instances[idx].Sig
		}
	}
	if !types.Accepts(expected, got) {
		return got, mismatch(r.span(id), expected, got)
	}
	return got, nil
}

func openLambda(arity int) types.Type {
	params := make([]types.Type, arity)
	for i := range params {
		params[i] = types.Infer()
	}
	return types.Lambda(types.Infer(), params...)
}

// isOpenLambda: function type whose return is still unknown.
func isOpenLambda(t types.Type) bool {
	return t.Kind() == types.KindFunction && t.Return().IsInfer()
}

func isClosedFunction(t types.Type) bool {
	return t.Kind() == types.KindFunction && !t.Return().IsInfer()
}
