package layout

import "fmt"

// LayoutErrorKind enumerates layout failures.
type LayoutErrorKind uint8

const (
	// LayoutErrUninferred: a local still has the Infer type.
	LayoutErrUninferred LayoutErrorKind = iota + 1
	// LayoutErrSlotOverflow: a local does not fit below MaxLocals.
	LayoutErrSlotOverflow
	// LayoutErrWidthMismatch: the binding width disagrees with its type.
	LayoutErrWidthMismatch
)

// LayoutError is a frame that an emitter could not lay out.
type LayoutError struct {
	Kind  LayoutErrorKind
	Frame string
	Local string
	Slot  int
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrUninferred:
		return fmt.Sprintf("%s: local %q has no inferred type", e.Frame, e.Local)
	case LayoutErrSlotOverflow:
		return fmt.Sprintf("%s: local %q at slot %d exceeds max locals", e.Frame, e.Local, e.Slot)
	case LayoutErrWidthMismatch:
		return fmt.Sprintf("%s: local %q width disagrees with its type", e.Frame, e.Local)
	default:
		return fmt.Sprintf("layout error kind=%d in %s", e.Kind, e.Frame)
	}
}
