package sema

import (
	"zeron/internal/ast"
	"zeron/internal/symbols"
	"zeron/internal/types"
)

// MainFrame names the frame of top-level code.
const MainFrame = "<main>"

// Frame describes the locals of one function body, lambda body or the
// top level. Slots are LVT indexes; Base is the first slot of the frame.
type Frame struct {
	Name      string
	Sig       types.Type
	Stmt      ast.StmtID // function declaration
	Lambda    ast.ExprID // lambda expression
	Base      int
	MaxLocals int
	Locals    []symbols.Binding
}

// Instance is one call-site typing of an unannotated lambda.
type Instance struct {
	Lambda ast.ExprID
	Sig    types.Type
	Types  map[ast.ExprID]types.Type
	// Calls maps lambda calls inside this body to their Instance.
	Calls map[ast.ExprID]int
	Frame int
}

// TypeOf returns the type of id inside the instance.
func (in *Instance) TypeOf(id ast.ExprID) (types.Type, bool) {
	t, ok := in.Types[id]
	return t, ok
}

type frameMark struct {
	highWater int
	base      int
	retired   int
}

func (r *resolver) openFrame() frameMark {
	return frameMark{
		highWater: r.table.ResetMaxLocals(),
		base:      r.table.NumLocals(),
		retired:   r.table.NumRetired(),
	}
}

// closeFrame runs after the frame's scope ended. It takes the bindings
// retired since openFrame that no nested frame claimed.
func (r *resolver) closeFrame(m frameMark, f Frame) int {
	f.Base = m.base
	f.MaxLocals = r.table.MaxLocals() - m.base
	retired := r.table.Retired()
	for len(r.claimed) < len(retired) {
		r.claimed = append(r.claimed, false)
	}
	for i := m.retired; i < len(retired); i++ {
		if !r.claimed[i] {
			r.claimed[i] = true
			f.Locals = append(f.Locals, retired[i])
		}
	}
	r.table.RestoreMaxLocals(m.highWater)
	r.res.Frames = append(r.res.Frames, f)
	return len(r.res.Frames) - 1
}
