package ast

import (
	"errors"

	"zeron/internal/types"
)

// ErrTypeFrozen is returned when a resolved type cell is written again.
var ErrTypeFrozen = errors.New("expression type already resolved")

// TypeCell holds an expression's resolved type. It reads as Infer until
// written and accepts exactly one write.
type TypeCell struct {
	t   types.Type
	set bool
}

// Get returns the stored type or Infer.
func (c *TypeCell) Get() types.Type {
	if !c.set {
		return types.Infer()
	}
	return c.t
}

// Resolved reports whether the cell has been written.
func (c *TypeCell) Resolved() bool { return c.set }

// Set freezes the cell to t.
func (c *TypeCell) Set(t types.Type) error {
	if c.set {
		return ErrTypeFrozen
	}
	c.t = t
	c.set = true
	return nil
}
