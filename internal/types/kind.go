package types

// Kind is the tag of a Type.
type Kind uint8

const (
	// KindInfer is a placeholder for a type that is not known yet.
	KindInfer Kind = iota
	// KindNever is the uninhabited type; the type of null before wrapping.
	KindNever
	// KindUnit is the no-value type.
	KindUnit
	KindInt
	KindFloat
	KindBoolean
	KindString
	// KindNominal is a named type with modifiers.
	KindNominal
	// KindGeneric is a nominal base applied to type arguments.
	KindGeneric
	// KindFunction is a callable signature.
	KindFunction
)

var kindNames = [...]string{
	KindInfer:    "Infer",
	KindNever:    "Never",
	KindUnit:     "Unit",
	KindInt:      "Int",
	KindFloat:    "Float",
	KindBoolean:  "Boolean",
	KindString:   "String",
	KindNominal:  "Nominal",
	KindGeneric:  "Generic",
	KindFunction: "Function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsPrimitive reports whether k is one of the builtin value kinds.
func (k Kind) IsPrimitive() bool {
	return k >= KindInt && k <= KindString
}

// Modifiers is the modifier set carried by nominal types.
// Never and Unit only use Nullable.
type Modifiers uint8

const (
	Mutable Modifiers = 1 << iota
	Nullable
	TypeParameter
)

// modifier symbols in descriptor order
var modSymbols = [...]struct {
	m   Modifiers
	sym string
}{
	{Mutable, "&"},
	{Nullable, "?"},
	{TypeParameter, "#"},
}

func (m Modifiers) descriptor() string {
	out := ""
	for _, s := range modSymbols {
		if m&s.m != 0 {
			out += s.sym
		}
	}
	return out
}
