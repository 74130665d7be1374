package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"zeron/internal/ast"
	"zeron/internal/source"
	"zeron/internal/symbols"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every statement span is non-empty and fully contained in file.Span
// 3) every expression span lies inside its file span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if len(f.Stmts) > 0 && f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, id := range f.Stmts {
		sp := b.Stmts.Get(id).Span
		if sp.Empty() {
			return fmt.Errorf("empty statement span: %v", sp)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("statement span %v is outside file span %v", sp, f.Span)
		}
	}

	var bad error
	b.WalkFile(fileID, ast.WalkOptions{}, func(id ast.ExprID, e *ast.Expr) bool {
		if bad == nil && !f.Span.Contains(e.Span) {
			bad = fmt.Errorf("expression %d (%s) span %v is outside file span %v", id, e.Kind, e.Span, f.Span)
		}
		return bad == nil
	})
	return bad
}

// CheckResolved verifies that every expression outside lambda bodies
// carries a concrete type.
func CheckResolved(b *ast.Builder, fileID ast.FileID) error {
	var bad error
	b.WalkFile(fileID, ast.WalkOptions{SkipLambdaBodies: true}, func(id ast.ExprID, e *ast.Expr) bool {
		if bad != nil {
			return false
		}
		if !e.Type.Resolved() || e.Type.Get().IsInfer() {
			bad = fmt.Errorf("expression %d (%s) at %v is unresolved", id, e.Kind, e.Span)
		}
		return true
	})
	return bad
}

// CheckTable verifies that the live scopes own the whole LVT and that
// every live slot maps back to a bound name.
func CheckTable(tab *symbols.Table) error {
	if err := tab.Verify(); err != nil {
		return err
	}
	for slot, name := range tab.Locals() {
		b, err := tab.Lookup(name)
		if err != nil {
			return fmt.Errorf("slot %d names %q which is not bound: %w", slot, name, err)
		}
		if slot < b.Slot || slot >= b.Slot+b.Width.Slots() {
			return fmt.Errorf("slot %d is outside %q's slots [%d, %d)", slot, name, b.Slot, b.Slot+b.Width.Slots())
		}
	}
	return nil
}
