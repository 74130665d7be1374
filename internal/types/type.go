package types

import (
	"slices"
	"strings"
)

// Type is a Zeron type descriptor.
//
// Field use by kind:
//   - Nominal: name, mods
//   - Generic: name and mods of the base, elems = type arguments
//   - Function: name (empty for lambdas), elems = parameters, ret
//   - Never, Unit: mods (Nullable only)
type Type struct {
	kind  Kind
	mods  Modifiers
	name  string
	elems []Type
	ret   *Type
}

func Infer() Type   { return Type{kind: KindInfer} }
func Never() Type   { return Type{kind: KindNever} }
func Unit() Type    { return Type{kind: KindUnit} }
func Int() Type     { return Type{kind: KindInt} }
func Float() Type   { return Type{kind: KindFloat} }
func Boolean() Type { return Type{kind: KindBoolean} }
func String() Type  { return Type{kind: KindString} }

// Nominal builds a named type with the given modifiers.
func Nominal(name string, mods Modifiers) Type {
	return Type{kind: KindNominal, name: name, mods: mods}
}

// TypeParam builds a type-parameter nominal.
func TypeParam(name string) Type {
	return Nominal(name, TypeParameter)
}

// Named maps a source type name to a type: builtin names give their
// primitive, anything else a plain Nominal.
func Named(name string) Type {
	switch name {
	case "Infer":
		return Infer()
	case "Never":
		return Never()
	case "Unit":
		return Unit()
	case "Int":
		return Int()
	case "Float":
		return Float()
	case "Boolean":
		return Boolean()
	case "String":
		return String()
	default:
		return Nominal(name, 0)
	}
}

// Generic applies base to args. base must be a Nominal.
func Generic(base Type, args ...Type) Type {
	if base.kind != KindNominal {
		panic("types.Generic: base is " + base.kind.String())
	}
	return Type{kind: KindGeneric, name: base.name, mods: base.mods, elems: slices.Clone(args)}
}

// Function builds a named callable signature.
func Function(name string, ret Type, params ...Type) Type {
	r := ret
	return Type{kind: KindFunction, name: name, elems: slices.Clone(params), ret: &r}
}

// Lambda builds an anonymous callable signature.
func Lambda(ret Type, params ...Type) Type {
	return Function("", ret, params...)
}

// Range is the type of an integer range literal.
func Range() Type {
	return Generic(Nominal("Range", 0), Int())
}

func (t Type) Kind() Kind { return t.kind }

// Name returns the nominal name, the generic base name or the function name.
// Primitives, Never and Unit report their builtin name.
func (t Type) Name() string {
	switch t.kind {
	case KindNominal, KindGeneric, KindFunction:
		return t.name
	default:
		return t.kind.String()
	}
}

func (t Type) Modifiers() Modifiers { return t.mods }

func (t Type) IsInfer() bool         { return t.kind == KindInfer }
func (t Type) IsNullable() bool      { return t.mods&Nullable != 0 }
func (t Type) IsMutable() bool       { return t.mods&Mutable != 0 }
func (t Type) IsTypeParameter() bool { return t.kind == KindNominal && t.mods&TypeParameter != 0 }

// IsDoubleWidth reports whether values of t take two local slots.
func (t Type) IsDoubleWidth() bool { return t.kind == KindFloat }

// OrElse returns b when a is Infer, else a.
func OrElse(a, b Type) Type {
	if a.kind == KindInfer {
		return b
	}
	return a
}

// ToNullable marks nominal, generic, Never and Unit types nullable.
// Other kinds are returned unchanged.
func (t Type) ToNullable() Type {
	switch t.kind {
	case KindNominal, KindGeneric, KindNever, KindUnit:
		return t.withMod(Nullable)
	}
	return t
}

// ToMutable marks nominal and generic types mutable.
func (t Type) ToMutable() Type {
	if t.kind == KindNominal || t.kind == KindGeneric {
		return t.withMod(Mutable)
	}
	return t
}

// ToTypeParameter marks a nominal as a type parameter.
func (t Type) ToTypeParameter() Type {
	if t.kind == KindNominal {
		return t.withMod(TypeParameter)
	}
	return t
}

func (t Type) withMod(m Modifiers) Type {
	if t.mods&m != 0 {
		return t
	}
	t.mods |= m
	return t
}

// Base returns the nominal base of a generic type.
func (t Type) Base() Type {
	if t.kind != KindGeneric {
		return Infer()
	}
	return Nominal(t.name, t.mods)
}

// Args returns a copy of the type arguments of a generic type.
func (t Type) Args() []Type {
	if t.kind != KindGeneric {
		return nil
	}
	return slices.Clone(t.elems)
}

// Params returns a copy of a function's parameter types.
func (t Type) Params() []Type {
	if t.kind != KindFunction {
		return nil
	}
	return slices.Clone(t.elems)
}

// Param returns the i-th parameter type of a function.
func (t Type) Param(i int) Type {
	if t.kind != KindFunction || i < 0 || i >= len(t.elems) {
		return Infer()
	}
	return t.elems[i]
}

// Return returns a function's return type; Infer for other kinds.
func (t Type) Return() Type {
	if t.kind != KindFunction || t.ret == nil {
		return Infer()
	}
	return *t.ret
}

// Arity is the parameter count of a function or the argument count of a generic.
func (t Type) Arity() int {
	if t.kind == KindFunction || t.kind == KindGeneric {
		return len(t.elems)
	}
	return 0
}

// IsLambda reports whether t is an anonymous function type.
func (t Type) IsLambda() bool { return t.kind == KindFunction && t.name == "" }

// WithReturn returns a copy of the function type with a new return type.
func (t Type) WithReturn(ret Type) Type {
	if t.kind != KindFunction {
		return t
	}
	r := ret
	t.ret = &r
	t.elems = slices.Clone(t.elems)
	return t
}

// WithName returns a copy of the function type carrying name.
func (t Type) WithName(name string) Type {
	if t.kind != KindFunction {
		return t
	}
	t.name = name
	return t
}

// Equal compares types structurally. Function names are ignored.
func Equal(a, b Type) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNominal:
		return a.name == b.name && a.mods == b.mods
	case KindGeneric:
		return a.name == b.name && a.mods == b.mods && equalList(a.elems, b.elems)
	case KindFunction:
		return equalList(a.elems, b.elems) && Equal(a.Return(), b.Return())
	case KindNever, KindUnit:
		return a.IsNullable() == b.IsNullable()
	default:
		return true
	}
}

// Equal is a method form of Equal.
func (t Type) Equal(other Type) bool { return Equal(t, other) }

func equalList(a, b []Type) bool {
	return slices.EqualFunc(a, b, Equal)
}

// String renders t the way it is written in source.
func (t Type) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t Type) write(sb *strings.Builder) {
	switch t.kind {
	case KindInfer:
		sb.WriteString("<infer>")
	case KindNever, KindUnit:
		sb.WriteString(t.kind.String())
		if t.IsNullable() {
			sb.WriteByte('?')
		}
	case KindNominal, KindGeneric:
		if t.IsMutable() {
			sb.WriteByte('&')
		}
		if t.mods&TypeParameter != 0 {
			sb.WriteByte('#')
		}
		sb.WriteString(t.name)
		if t.kind == KindGeneric {
			sb.WriteByte('<')
			for i, a := range t.elems {
				if i > 0 {
					sb.WriteString(", ")
				}
				a.write(sb)
			}
			sb.WriteByte('>')
		}
		if t.IsNullable() {
			sb.WriteByte('?')
		}
	case KindFunction:
		sb.WriteByte('(')
		for i, p := range t.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.write(sb)
		}
		sb.WriteString(") -> ")
		t.Return().write(sb)
	default:
		sb.WriteString(t.kind.String())
	}
}
