package ast

import (
	"errors"
	"testing"

	"zeron/internal/source"
	"zeron/internal/types"
)

func sp(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be the nil sentinel")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("Allocate = %d, value %d", id, *a.Get(id))
	}
	if a.Get(2) != nil {
		t.Fatal("out-of-range index must give nil")
	}
}

func TestTypeCellWriteOnce(t *testing.T) {
	var c TypeCell
	if !c.Get().IsInfer() || c.Resolved() {
		t.Fatal("fresh cell must read as Infer")
	}
	if err := c.Set(types.Int()); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if err := c.Set(types.Float()); !errors.Is(err, ErrTypeFrozen) {
		t.Fatalf("second Set = %v, want ErrTypeFrozen", err)
	}
	if c.Get().Kind() != types.KindInt {
		t.Fatalf("cell changed to %v", c.Get())
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	lit := b.Exprs.NewLiteral(sp(0, 1), ExprLiteralData{Kind: LitInt, Text: "1", Int: 1})
	v := b.Exprs.NewVariable(sp(4, 5), "x")
	bin := b.Exprs.NewBinary(sp(0, 5), BinaryAdd, sp(2, 3), lit, v)

	if _, ok := b.Exprs.Variable(lit); ok {
		t.Fatal("literal accepted as variable")
	}
	data, ok := b.Exprs.Binary(bin)
	if !ok || data.Left != lit || data.Right != v || data.Op != BinaryAdd {
		t.Fatalf("binary payload = %+v", data)
	}
	if name, _ := b.Exprs.Variable(v); name.Name != "x" {
		t.Fatalf("variable = %q", name.Name)
	}
}

func TestWalkSkipsLambdaBodies(t *testing.T) {
	b := NewBuilder(Hints{})
	file := b.NewFile(sp(0, 20))
	inner := b.Exprs.NewVariable(sp(5, 6), "a")
	ret := b.Stmts.NewReturn(sp(5, 6), inner)
	lam := b.Exprs.NewLambda(sp(0, 6), []LambdaParam{{Name: "a"}}, sp(2, 4), []StmtID{ret})
	b.PushStmt(file, b.Stmts.NewLet(sp(0, 7), StmtLetData{Name: "f", Type: types.Infer(), Init: lam, Final: true}))

	count := func(opts WalkOptions) int {
		n := 0
		b.WalkFile(file, opts, func(ExprID, *Expr) bool { n++; return true })
		return n
	}
	if got := count(WalkOptions{}); got != 2 {
		t.Fatalf("full walk visited %d, want 2", got)
	}
	if got := count(WalkOptions{SkipLambdaBodies: true}); got != 1 {
		t.Fatalf("skipping walk visited %d, want 1", got)
	}
}

func TestLiteralTypes(t *testing.T) {
	tests := map[LitKind]string{
		LitInt:    ":Int",
		LitFloat:  ":Float",
		LitString: ":String",
		LitTrue:   ":Boolean",
		LitNull:   "?:Never",
		LitUnit:   "Unit",
		LitRange:  "@ 1 :Range :Int",
	}
	for kind, want := range tests {
		if got := kind.Type().Descriptor(); got != want {
			t.Errorf("%d: %q, want %q", kind, got, want)
		}
	}
}
