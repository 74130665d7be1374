package symbols

import (
	"fmt"

	"zeron/internal/ast"
	"zeron/internal/source"
	"zeron/internal/types"
)

// Width is the storage class of a binding.
type Width uint8

const (
	WidthSingle Width = iota
	WidthDouble
	WidthFunction
)

func (w Width) String() string {
	switch w {
	case WidthDouble:
		return "double"
	case WidthFunction:
		return "function"
	default:
		return "single"
	}
}

// Slots is the number of LVT entries a local of this width takes.
func (w Width) Slots() int {
	if w == WidthDouble {
		return 2
	}
	return 1
}

// WidthOf derives the width of a type.
func WidthOf(t types.Type) Width {
	switch {
	case t.IsDoubleWidth():
		return WidthDouble
	case t.Kind() == types.KindFunction:
		return WidthFunction
	default:
		return WidthSingle
	}
}

// DeclSite points at the syntax that declared a binding.
type DeclSite struct {
	Stmt ast.StmtID
	// Init is the initializer expression of a variable, when it has one.
	// Lambda calls follow it back to the lambda body.
	Init ast.ExprID
	Span source.Span
}

// Binding is one declared name. It is a value: updates produce a new
// Binding that replaces the old one in the table.
type Binding struct {
	Name        string
	Decl        DeclSite
	Slot        int
	Type        types.Type
	Width       Width
	Initialized bool
	Final       bool
}

// IsGlobal reports whether the binding lives outside every scope.
func (b Binding) IsGlobal() bool { return b.Slot == Global }

// Init returns a copy marked initialized.
func (b Binding) Init() Binding {
	b.Initialized = true
	return b
}

// WithType returns a copy carrying t and the width derived from it.
func (b Binding) WithType(t types.Type) Binding {
	b.Type = t
	b.Width = WidthOf(t)
	return b
}

func (b Binding) String() string {
	slot := "global"
	if !b.IsGlobal() {
		slot = fmt.Sprintf("slot %d", b.Slot)
	}
	return fmt.Sprintf("%s: %s (%s, %s, init=%t, final=%t)", b.Name, b.Type, slot, b.Width, b.Initialized, b.Final)
}
