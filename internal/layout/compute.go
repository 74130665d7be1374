package layout

import (
	"cmp"
	"slices"

	"fortio.org/safecast"

	"zeron/internal/sema"
	"zeron/internal/symbols"
)

// Frame lays out one resolver frame. Locals are ordered by slot, then by
// name; sibling scopes may share slots.
func (e *Engine) Frame(f sema.Frame) (Frame, error) {
	out := Frame{Name: f.Name, MaxLocals: f.MaxLocals}
	// max_locals в classfile занимает u2
	if _, err := safecast.Conv[uint16](f.MaxLocals); err != nil {
		return out, &LayoutError{Kind: LayoutErrSlotOverflow, Frame: f.Name, Slot: f.MaxLocals}
	}
	if f.Name != sema.MainFrame {
		out.Descriptor = f.Sig.Descriptor()
	}
	for _, b := range f.Locals {
		l, err := e.local(f, b)
		if err != nil {
			return out, err
		}
		out.Locals = append(out.Locals, l)
	}
	slices.SortStableFunc(out.Locals, func(a, b Local) int {
		return cmp.Or(cmp.Compare(a.Slot, b.Slot), cmp.Compare(a.Name, b.Name))
	})
	return out, nil
}

func (e *Engine) local(f sema.Frame, b symbols.Binding) (Local, error) {
	tl, ok := e.LayoutOf(b.Type)
	if !ok {
		return Local{}, &LayoutError{Kind: LayoutErrUninferred, Frame: f.Name, Local: b.Name}
	}
	if (b.Width == symbols.WidthDouble) != (tl.Family == FamilyDouble) {
		return Local{}, &LayoutError{Kind: LayoutErrWidthMismatch, Frame: f.Name, Local: b.Name}
	}
	slot := b.Slot - f.Base
	if slot < 0 || slot+tl.Slots > f.MaxLocals {
		return Local{}, &LayoutError{Kind: LayoutErrSlotOverflow, Frame: f.Name, Local: b.Name, Slot: slot}
	}
	return Local{
		Name:       b.Name,
		Slot:       slot,
		Slots:      tl.Slots,
		Family:     tl.Family,
		Descriptor: b.Type.Descriptor(),
		Final:      b.Final,
	}, nil
}
