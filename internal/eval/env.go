package eval

import (
	"errors"

	"zeron/internal/types"
)

var (
	errUndefined = errors.New("undefined")
	errFinal     = errors.New("final")
)

// Bind is a variable slot of an environment.
type Bind struct {
	Value       Value
	Type        types.Type
	Initialized bool
	Final       bool
}

// Env is one lexical scope. Variables and functions live in separate
// namespaces; a variable hides a function of the same name.
type Env struct {
	parent *Env
	vars   map[string]*Bind
	funcs  map[string]*Callable
}

func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: make(map[string]*Bind)}
}

func (e *Env) define(name string, b Bind) {
	e.vars[name] = &b
}

func (e *Env) defineFunc(fn *Callable) {
	if e.funcs == nil {
		e.funcs = make(map[string]*Callable)
	}
	e.funcs[fn.Name] = fn
}

// lookup walks outward through the variable namespace.
func (e *Env) lookup(name string) (*Bind, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (e *Env) function(name string) (*Callable, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if fn, ok := cur.funcs[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// assign rebinds the innermost variable called name.
func (e *Env) assign(name string, v Value) error {
	b, ok := e.lookup(name)
	switch {
	case !ok:
		return errUndefined
	case b.Final:
		return errFinal
	}
	b.Value = v
	b.Initialized = true
	return nil
}
