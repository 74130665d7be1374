// Package layout turns resolver frames into the slot map a bytecode
// emitter needs: slot, width, load/store family and max locals.
package layout

import (
	"zeron/internal/sema"
	"zeron/internal/symbols"
	"zeron/internal/types"
)

// Family is the load/store opcode prefix of a local.
type Family byte

const (
	FamilyInt    Family = 'i'
	FamilyDouble Family = 'd'
	FamilyRef    Family = 'a'
)

func (f Family) Load() string  { return string(f) + "load" }
func (f Family) Store() string { return string(f) + "store" }

// TypeLayout is how one type is stored in a frame.
type TypeLayout struct {
	Slots  int
	Family Family
}

// Engine computes layouts for one Target.
type Engine struct {
	Target Target
	cache  *cache
}

func New(target Target) *Engine {
	return &Engine{Target: target, cache: newCache()}
}

// LayoutOf is total over resolved types; Infer has no layout.
func (e *Engine) LayoutOf(t types.Type) (TypeLayout, bool) {
	if t.IsInfer() {
		return TypeLayout{}, false
	}
	desc := t.Descriptor()
	if l, ok := e.cache.get(desc); ok {
		return l, true
	}
	l := TypeLayout{Slots: 1, Family: FamilyRef}
	switch t.Kind() {
	case types.KindInt, types.KindBoolean:
		l.Family = FamilyInt
	case types.KindFloat:
		l = TypeLayout{Slots: e.Target.DoubleSlots, Family: FamilyDouble}
	}
	e.cache.put(desc, l)
	return l, true
}

// Local is one laid out variable. Slot is relative to its frame.
type Local struct {
	Name       string
	Slot       int
	Slots      int
	Family     Family
	Descriptor string
	Final      bool
}

// Frame is the layout of one body.
type Frame struct {
	Name       string
	Descriptor string // пусто у <main>
	MaxLocals  int
	Locals     []Local
}

// Global is a top-level binding; emitters make it a static field.
type Global struct {
	Name       string
	Descriptor string
	Final      bool
}

// Program is the layout report of a resolved file.
type Program struct {
	Target    string
	Globals   []Global
	Functions []Global
	Frames    []Frame
}

func toGlobal(b symbols.Binding) Global {
	return Global{Name: b.Name, Descriptor: b.Type.Descriptor(), Final: b.Final}
}

// Program lays out every frame of a successful resolution.
func (e *Engine) Program(res sema.Result) (Program, error) {
	p := Program{Target: e.Target.Name}
	for _, b := range res.Table.Globals() {
		p.Globals = append(p.Globals, toGlobal(b))
	}
	for _, b := range res.Table.Functions() {
		if isBuiltin(b.Name) {
			continue
		}
		p.Functions = append(p.Functions, toGlobal(b))
	}
	for _, f := range res.Frames {
		fl, err := e.Frame(f)
		if err != nil {
			return p, err
		}
		p.Frames = append(p.Frames, fl)
	}
	return p, nil
}

func isBuiltin(name string) bool {
	for _, bi := range sema.Builtins {
		if bi.Name == name {
			return true
		}
	}
	return false
}
