package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"zeron/internal/ast"
	"zeron/internal/sema"
	"zeron/internal/types"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	VKNull ValueKind = iota
	VKUnit
	VKInt
	VKFloat
	VKBool
	VKString
	VKRange
	VKFunc
)

func (k ValueKind) String() string {
	switch k {
	case VKNull:
		return "null"
	case VKUnit:
		return "unit"
	case VKInt:
		return "int"
	case VKFloat:
		return "float"
	case VKBool:
		return "bool"
	case VKString:
		return "string"
	case VKRange:
		return "range"
	case VKFunc:
		return "func"
	default:
		return fmt.Sprintf("<unknown:%d>", uint8(k))
	}
}

// Value is one runtime value. The zero Value is null.
type Value struct {
	Kind  ValueKind
	Int   int32
	Float float64
	Bool  bool
	Str   string
	Range Range
	Fn    *Callable
}

// Range is an inclusive int range; Step is +1 or -1.
type Range struct {
	Lo, Hi, Step int32
}

func MakeInt(n int32) Value       { return Value{Kind: VKInt, Int: n} }
func MakeFloat(f float64) Value   { return Value{Kind: VKFloat, Float: f} }
func MakeBool(b bool) Value       { return Value{Kind: VKBool, Bool: b} }
func MakeString(s string) Value   { return Value{Kind: VKString, Str: s} }
func MakeFunc(fn *Callable) Value { return Value{Kind: VKFunc, Fn: fn} }
func MakeUnit() Value             { return Value{Kind: VKUnit} }
func MakeNull() Value             { return Value{} }

// MakeRange counts down when lo > hi.
func MakeRange(lo, hi int32) Value {
	step := int32(1)
	if lo > hi {
		step = -1
	}
	return Value{Kind: VKRange, Range: Range{Lo: lo, Hi: hi, Step: step}}
}

// String renders v the way print shows it.
func (v Value) String() string {
	switch v.Kind {
	case VKNull:
		return "null"
	case VKUnit:
		return "Unit"
	case VKInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case VKFloat:
		return formatDouble(v.Float)
	case VKBool:
		return strconv.FormatBool(v.Bool)
	case VKString:
		return v.Str
	case VKRange:
		return fmt.Sprintf("Range[%d - %d step %d]", v.Range.Lo, v.Range.Hi, v.Range.Step)
	case VKFunc:
		return v.Fn.String()
	default:
		return fmt.Sprintf("<unknown:%d>", v.Kind)
	}
}

// Equal is value equality; an Int never equals a Float.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case VKInt:
		return v.Int == o.Int
	case VKFloat:
		return v.Float == o.Float
	case VKBool:
		return v.Bool == o.Bool
	case VKString:
		return v.Str == o.Str
	case VKRange:
		return v.Range == o.Range
	case VKFunc:
		return v.Fn == o.Fn
	default:
		return true
	}
}

// className is what typeof reports for a value that is not a variable.
func (v Value) className() string {
	switch v.Kind {
	case VKInt:
		return "Integer"
	case VKFloat:
		return "Double"
	case VKBool:
		return "Boolean"
	case VKString:
		return "String"
	case VKRange:
		return "IntRangeLiteral"
	case VKFunc:
		return "Function"
	case VKUnit:
		return "Unit"
	default:
		return "Null"
	}
}

// formatDouble follows Double.toString: plain notation in [1e-3, 1e7),
// computerized scientific notation outside, always a fractional digit.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	if abs := math.Abs(f); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(n)
}

// NativeFunc implements a builtin.
type NativeFunc func(in *Interpreter, args []Value) (Value, error)

// Callable is a function value: a declared function, a lambda closure or
// a native.
type Callable struct {
	Name   string // пусто у лямбды
	Native NativeFunc
	Params []string
	Body   []ast.StmtID
	Sig    types.Type
	Env    *Env
	Lambda ast.ExprID
	// Inst holds the body's expression types when they were resolved per
	// call site; nil means they are in the AST.
	Inst *sema.Instance
}

// Arity is the parameter count.
func (c *Callable) Arity() int { return c.Sig.Arity() }

func (c *Callable) String() string {
	switch {
	case c.Native != nil:
		return "<native fn " + c.Name + ">"
	case c.Name == "":
		return "<lambda>"
	default:
		return "<fn " + c.Name + ">"
	}
}

// bound returns a copy of c typed by inst.
func (c *Callable) bound(inst *sema.Instance) *Callable {
	cp := *c
	cp.Inst = inst
	cp.Sig = inst.Sig
	return &cp
}
