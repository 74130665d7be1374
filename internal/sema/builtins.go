package sema

import (
	"zeron/internal/symbols"
	"zeron/internal/types"
)

// Builtin is a native function visible to every program.
type Builtin struct {
	Name string
	Sig  types.Type
}

// Builtins are declared in the function namespace before resolution.
var Builtins = []Builtin{
	{Name: "clock", Sig: types.Function("clock", types.Int())},
}

func (r *resolver) declareBuiltins() error {
	for _, bi := range Builtins {
		if err := r.table.DeclareFunction(symbols.DeclSite{}, bi.Name, bi.Sig); err != nil {
			return err
		}
	}
	return nil
}
