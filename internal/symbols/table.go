package symbols

import (
	"fmt"
	"maps"
	"slices"

	"fortio.org/safecast"

	"zeron/internal/types"
)

// Hints provide optional capacity suggestions for the table.
type Hints struct{ Scopes, Locals uint }

// Table owns every live binding and the LVT for one resolution pass.
// It is not safe for concurrent use.
type Table struct {
	Scopes *Scopes

	names     map[string]Binding
	globals   []string // declaration order
	funcs     map[string]Binding
	funcOrder []string

	current   ScopeID
	locals    []string
	maxLocals int
	retired   []Binding
}

// NewTable builds an empty table at the global level.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	return &Table{
		Scopes: NewScopes(scopeCap),
		names:  make(map[string]Binding),
		funcs:  make(map[string]Binding),
		locals: make([]string, 0, h.Locals),
	}
}

// Declare binds name. Outside every scope the binding is global;
// otherwise it takes the next LVT slot(s) of the current scope.
// The returned slot is Global or the first local slot.
func (t *Table) Declare(decl DeclSite, name string, typ types.Type, final bool) (int, error) {
	if _, ok := t.names[name]; ok {
		return 0, duplicate(name, "Already a symbol bound to this name.")
	}
	b := Binding{Name: name, Decl: decl, Type: typ, Width: WidthOf(typ), Final: final}
	scope := t.Scopes.Get(t.current)
	if scope == nil {
		b.Slot = Global
		t.names[name] = b
		t.globals = append(t.globals, name)
		return Global, nil
	}
	b.Slot = len(t.locals)
	n := b.Width.Slots()
	for range n {
		t.locals = append(t.locals, name)
	}
	scope.Size += n
	t.maxLocals = max(t.maxLocals, len(t.locals))
	t.names[name] = b
	return b.Slot, nil
}

// Define marks a declared binding initialized.
func (t *Table) Define(name string) error {
	b, ok := t.names[name]
	if !ok {
		return unknown(name)
	}
	t.names[name] = b.Init()
	return nil
}

// Lookup returns the live binding for name.
func (t *Table) Lookup(name string) (Binding, error) {
	b, ok := t.names[name]
	if !ok {
		return Binding{}, unknown(name)
	}
	return b, nil
}

// Contains reports whether name is bound in the variable namespace.
func (t *Table) Contains(name string) bool {
	_, ok := t.names[name]
	return ok
}

// SetResolvedType refines an inferred binding. A local that becomes
// double width claims its second slot; that is only possible while it is
// still the last LVT entry.
func (t *Table) SetResolvedType(name string, typ types.Type) error {
	b, ok := t.names[name]
	if !ok {
		return unknown(name)
	}
	if !b.Type.IsInfer() {
		return invalidState(name, "Cannot resolve type of non-inferred bind.")
	}
	nb := b.WithType(typ)
	if !b.IsGlobal() {
		grow := nb.Width.Slots() - b.Width.Slots()
		if grow > 0 {
			if b.Slot+b.Width.Slots() != len(t.locals) {
				return invalidState(name, "Cannot widen a local that is not the last slot.")
			}
			for range grow {
				t.locals = append(t.locals, name)
			}
			t.Scopes.Get(t.current).Size += grow
			t.maxLocals = max(t.maxLocals, len(t.locals))
		}
	}
	t.names[name] = nb
	return nil
}

// SetResolvedReturnType fills in the inferred return type of a declared
// function.
func (t *Table) SetResolvedReturnType(name string, ret types.Type) error {
	b, ok := t.funcs[name]
	if !ok {
		return unknown(name)
	}
	if b.Type.Kind() != types.KindFunction || !b.Type.Return().IsInfer() {
		return invalidState(name, "Cannot resolve return type of non-inferred function.")
	}
	t.funcs[name] = b.WithType(b.Type.WithReturn(ret))
	return nil
}

// DeclareFunction binds name in the function namespace. Functions are
// global and initialized from the start so bodies can recurse.
func (t *Table) DeclareFunction(decl DeclSite, name string, sig types.Type) error {
	if _, ok := t.funcs[name]; ok {
		return duplicate(name, "Already a function bound to this name.")
	}
	t.funcs[name] = Binding{
		Name: name, Decl: decl, Slot: Global, Type: sig,
		Width: WidthFunction, Initialized: true, Final: true,
	}
	t.funcOrder = append(t.funcOrder, name)
	return nil
}

// LookupFunction returns the function bound to name.
func (t *Table) LookupFunction(name string) (Binding, error) {
	b, ok := t.funcs[name]
	if !ok {
		return Binding{}, unknown(name)
	}
	return b, nil
}

// ContainsFunction reports whether name is bound in the function namespace.
func (t *Table) ContainsFunction(name string) bool {
	_, ok := t.funcs[name]
	return ok
}

// BeginScope opens a child of the current scope.
func (t *Table) BeginScope() ScopeID {
	t.current = t.Scopes.New(t.current)
	return t.current
}

// EndScope pops exactly the current scope's LVT entries and their names,
// then returns to the parent.
func (t *Table) EndScope() error {
	scope := t.Scopes.Get(t.current)
	if scope == nil {
		return fmt.Errorf("end scope at global level: %w", ErrDesync)
	}
	if scope.Size > len(t.locals) {
		return fmt.Errorf("scope owns %d slots, LVT has %d: %w", scope.Size, len(t.locals), ErrDesync)
	}
	for range scope.Size {
		name := t.locals[len(t.locals)-1]
		t.locals = t.locals[:len(t.locals)-1]
		// double-width locals appear twice; retire them once
		if b, ok := t.names[name]; ok {
			t.retired = append(t.retired, b)
			delete(t.names, name)
		}
	}
	t.current = scope.Parent
	return nil
}

// Depth is the number of open scopes.
func (t *Table) Depth() int {
	d := 0
	for id := t.current; id.IsValid(); id = t.Scopes.Get(id).Parent {
		d++
	}
	return d
}

// Verify checks that the live scopes together own the whole LVT.
func (t *Table) Verify() error {
	size := 0
	for id := t.current; id.IsValid(); {
		s := t.Scopes.Get(id)
		size += s.Size
		id = s.Parent
	}
	if size != len(t.locals) {
		return fmt.Errorf("scopes own %d slots, LVT has %d: %w", size, len(t.locals), ErrDesync)
	}
	return nil
}

// Globals returns the global variable bindings in declaration order.
func (t *Table) Globals() []Binding {
	out := make([]Binding, 0, len(t.globals))
	for _, name := range t.globals {
		if b, ok := t.names[name]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Functions returns the function bindings in declaration order.
func (t *Table) Functions() []Binding {
	out := make([]Binding, 0, len(t.funcOrder))
	for _, name := range t.funcOrder {
		out = append(out, t.funcs[name])
	}
	return out
}

// Retired returns locals whose scope has ended, in the order they left.
func (t *Table) Retired() []Binding {
	return slices.Clone(t.retired)
}

// Locals returns a copy of the live LVT.
func (t *Table) Locals() []string {
	return slices.Clone(t.locals)
}

// LocalName maps a live slot to its name.
func (t *Table) LocalName(slot int) (string, bool) {
	if slot < 0 || slot >= len(t.locals) {
		return "", false
	}
	return t.locals[slot], true
}

// MaxLocals is the LVT high-water mark seen so far.
func (t *Table) MaxLocals() int { return t.maxLocals }

// ResetMaxLocals restarts high-water tracking at the current LVT length
// and returns the previous mark. Frames use it to measure one body.
func (t *Table) ResetMaxLocals() int {
	prev := t.maxLocals
	t.maxLocals = len(t.locals)
	return prev
}

// RestoreMaxLocals puts back a mark returned by ResetMaxLocals once a
// nested frame is measured.
func (t *Table) RestoreMaxLocals(mark int) {
	t.maxLocals = max(mark, len(t.locals))
}

// NumLocals is the live LVT length.
func (t *Table) NumLocals() int { return len(t.locals) }

// NumRetired counts the bindings retired so far.
func (t *Table) NumRetired() int { return len(t.retired) }

// Snapshot is the global-level state of a table between top-level
// statements.
type Snapshot struct {
	names     map[string]Binding
	globals   []string
	funcs     map[string]Binding
	funcOrder []string
	retired   int
}

// Snapshot must be taken outside every scope.
func (t *Table) Snapshot() Snapshot {
	return Snapshot{
		names:     maps.Clone(t.names),
		globals:   slices.Clone(t.globals),
		funcs:     maps.Clone(t.funcs),
		funcOrder: slices.Clone(t.funcOrder),
		retired:   len(t.retired),
	}
}

// Rollback drops everything declared since s, open scopes included.
func (t *Table) Rollback(s Snapshot) {
	t.names = maps.Clone(s.names)
	t.globals = slices.Clone(s.globals)
	t.funcs = maps.Clone(s.funcs)
	t.funcOrder = slices.Clone(s.funcOrder)
	t.retired = t.retired[:s.retired]
	t.locals = t.locals[:0]
	t.current = NoScopeID
	t.maxLocals = 0
}
