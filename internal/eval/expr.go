package eval

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/source"
)

func (in *Interpreter) eval(id ast.ExprID) (Value, error) {
	e := in.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprAssign:
		data, _ := in.b.Exprs.Assign(id)
		v, err := in.eval(data.Value)
		if err != nil {
			return v, err
		}
		switch err := in.env.assign(data.Name, v); {
		case errors.Is(err, errFinal):
			return v, in.fail(diag.RunFinalReassign, data.NameSpan, "Cannot reassign final variable '%s'.", data.Name)
		case err != nil:
			return v, in.fail(diag.RunUndefined, data.NameSpan, "Undefined variable '%s'.", data.Name)
		}
		return v, nil

	case ast.ExprBinary:
		data, _ := in.b.Exprs.Binary(id)
		left, err := in.eval(data.Left)
		if err != nil {
			return left, err
		}
		right, err := in.eval(data.Right)
		if err != nil {
			return right, err
		}
		return in.binary(data.Op, data.OpSpan, left, right)

	case ast.ExprCall:
		data, _ := in.b.Exprs.Call(id)
		return in.call(id, data)

	case ast.ExprGroup:
		data, _ := in.b.Exprs.Group(id)
		return in.eval(data.Inner)

	case ast.ExprIf:
		data, _ := in.b.Exprs.If(id)
		ok, err := in.condition(data.Cond)
		if err != nil {
			return Value{}, err
		}
		if ok {
			return in.eval(data.Then)
		}
		return in.eval(data.Else)

	case ast.ExprLambda:
		data, _ := in.b.Exprs.Lambda(id)
		params := make([]string, len(data.Params))
		for i, p := range data.Params {
			params[i] = p.Name
		}
		fn := &Callable{
			Params: params,
			Body:   data.Body,
			Sig:    in.typeOf(id),
			Env:    in.env,
			Lambda: id,
			Inst:   in.inst,
		}
		if inst, ok := in.instanceAt(id); ok {
			fn = fn.bound(inst)
		}
		return MakeFunc(fn), nil

	case ast.ExprLit:
		data, _ := in.b.Exprs.Literal(id)
		return literal(data), nil

	case ast.ExprLogical:
		data, _ := in.b.Exprs.Logical(id)
		left, err := in.eval(data.Left)
		if err != nil {
			return left, err
		}
		l, err := in.ensureBool(left, in.b.Exprs.Get(data.Left).Span)
		if err != nil {
			return left, err
		}
		// or: true уже решает; and: false уже решает
		if (data.Op == ast.LogicalOr) == l {
			return MakeBool(l), nil
		}
		return in.eval(data.Right)

	case ast.ExprUnary:
		data, _ := in.b.Exprs.Unary(id)
		return in.unary(data, e.Span)

	case ast.ExprVariable:
		data, _ := in.b.Exprs.Variable(id)
		v, err := in.variable(data.Name, e.Span)
		if err != nil {
			return v, err
		}
		// let-связанная лямбда, переданная туда, где ждут сигнатуру
		if inst, ok := in.instanceAt(id); ok && v.Kind == VKFunc {
			v = MakeFunc(v.Fn.bound(inst))
		}
		return v, nil
	}
	panic(fmt.Sprintf("eval: unhandled expression kind %s", e.Kind))
}

func literal(data *ast.ExprLiteralData) Value {
	switch data.Kind {
	case ast.LitInt:
		return MakeInt(data.Int)
	case ast.LitFloat:
		return MakeFloat(data.Float)
	case ast.LitString:
		return MakeString(data.Str)
	case ast.LitTrue:
		return MakeBool(true)
	case ast.LitFalse:
		return MakeBool(false)
	case ast.LitRange:
		return MakeRange(data.Lo, data.Hi)
	case ast.LitUnit:
		return MakeUnit()
	default:
		return MakeNull()
	}
}

func (in *Interpreter) variable(name string, span source.Span) (Value, error) {
	if b, ok := in.env.lookup(name); ok {
		return b.Value, nil
	}
	if fn, ok := in.env.function(name); ok {
		return MakeFunc(fn), nil
	}
	return Value{}, in.fail(diag.RunUndefined, span, "Undefined variable '%s'.", name)
}

func (in *Interpreter) unary(data *ast.ExprUnaryData, span source.Span) (Value, error) {
	v, err := in.eval(data.Operand)
	if err != nil {
		return v, err
	}
	switch data.Op {
	case ast.UnaryNeg:
		switch v.Kind {
		case VKInt:
			return MakeInt(-v.Int), nil
		case VKFloat:
			return MakeFloat(-v.Float), nil
		}
		return v, in.fail(diag.RunTypeError, span, "Operand must be a number.")
	case ast.UnaryNot:
		b, err := in.ensureBool(v, span)
		return MakeBool(!b), err
	default:
		// typeof: у переменной дескриптор её типа, иначе имя класса значения
		if name, ok := in.b.Exprs.Variable(data.Operand); ok {
			if b, found := in.env.lookup(name.Name); found {
				return MakeString(b.Type.Descriptor()), nil
			}
			if fn, found := in.env.function(name.Name); found {
				return MakeString(fn.Sig.Descriptor()), nil
			}
		}
		return MakeString(v.className()), nil
	}
}

func (in *Interpreter) binary(op ast.BinaryOp, span source.Span, l, r Value) (Value, error) {
	switch op {
	case ast.BinaryEq:
		return MakeBool(l.Equal(r)), nil
	case ast.BinaryNotEq:
		return MakeBool(!l.Equal(r)), nil
	case ast.BinaryAdd:
		if l.Kind == VKString || r.Kind == VKString {
			// на стыке может появиться комбинируемый символ
			return MakeString(norm.NFC.String(l.String() + r.String())), nil
		}
	}
	if !isNumber(l) || !isNumber(r) {
		return Value{}, in.fail(diag.RunTypeError, span, "Invalid operands.")
	}
	// левый операнд выбирает арифметику
	if l.Kind == VKInt {
		return in.intOp(op, span, l.Int, r.asInt())
	}
	return floatOp(op, l.Float, r.asFloat()), nil
}

func isNumber(v Value) bool { return v.Kind == VKInt || v.Kind == VKFloat }

func (v Value) asInt() int32 {
	if v.Kind == VKFloat {
		return int32(v.Float)
	}
	return v.Int
}

func (v Value) asFloat() float64 {
	if v.Kind == VKInt {
		return float64(v.Int)
	}
	return v.Float
}

// intOp wraps on overflow like 32-bit two's complement.
func (in *Interpreter) intOp(op ast.BinaryOp, span source.Span, a, b int32) (Value, error) {
	switch op {
	case ast.BinaryAdd:
		return MakeInt(a + b), nil
	case ast.BinarySub:
		return MakeInt(a - b), nil
	case ast.BinaryMul:
		return MakeInt(a * b), nil
	case ast.BinaryDiv:
		if b == 0 {
			return Value{}, in.fail(diag.RunDivisionByZero, span, "/ by zero")
		}
		return MakeInt(a / b), nil
	case ast.BinaryLt:
		return MakeBool(a < b), nil
	case ast.BinaryLtEq:
		return MakeBool(a <= b), nil
	case ast.BinaryGt:
		return MakeBool(a > b), nil
	case ast.BinaryGtEq:
		return MakeBool(a >= b), nil
	}
	return Value{}, in.fail(diag.RunTypeError, span, "Invalid binary operator.")
}

func floatOp(op ast.BinaryOp, a, b float64) Value {
	switch op {
	case ast.BinaryAdd:
		return MakeFloat(a + b)
	case ast.BinarySub:
		return MakeFloat(a - b)
	case ast.BinaryMul:
		return MakeFloat(a * b)
	case ast.BinaryDiv:
		return MakeFloat(a / b)
	case ast.BinaryLt:
		return MakeBool(a < b)
	case ast.BinaryLtEq:
		return MakeBool(a <= b)
	case ast.BinaryGt:
		return MakeBool(a > b)
	default:
		return MakeBool(a >= b)
	}
}
