package layout

import (
	"context"
	"errors"
	"testing"

	"zeron/internal/ast"
	"zeron/internal/lexer"
	"zeron/internal/parser"
	"zeron/internal/sema"
	"zeron/internal/source"
	"zeron/internal/symbols"
	"zeron/internal/types"
)

func resolve(t *testing.T, src string) sema.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("layout.zr", []byte(src))
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(context.Background(), fs, lexer.New(fs.Get(id), lexer.Options{}), b, parser.Options{MaxErrors: 8})
	if pr.Errors != 0 {
		t.Fatalf("parse errors: %d", pr.Errors)
	}
	res := sema.Resolve(context.Background(), b, pr.File, sema.Options{})
	if !res.OK() {
		t.Fatal(res.Err)
	}
	return res
}

func frameNamed(t *testing.T, p Program, name string) Frame {
	t.Helper()
	for _, f := range p.Frames {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no frame %q", name)
	return Frame{}
}

func TestLayoutOf(t *testing.T) {
	e := New(JVM())
	tests := []struct {
		typ   types.Type
		slots int
		fam   Family
	}{
		{types.Int(), 1, FamilyInt},
		{types.Boolean(), 1, FamilyInt},
		{types.Float(), 2, FamilyDouble},
		{types.String(), 1, FamilyRef},
		{types.Nominal("Foo", types.Nullable), 1, FamilyRef},
		{types.Range(), 1, FamilyRef},
		{types.Lambda(types.Int(), types.Int()), 1, FamilyRef},
	}
	for _, tt := range tests {
		l, ok := e.LayoutOf(tt.typ)
		if !ok || l.Slots != tt.slots || l.Family != tt.fam {
			t.Errorf("LayoutOf(%s) = %+v, %v", tt.typ, l, ok)
		}
	}
	if _, ok := e.LayoutOf(types.Infer()); ok {
		t.Error("Infer must have no layout")
	}
	if FamilyDouble.Load() != "dload" || FamilyRef.Store() != "astore" {
		t.Error("opcode names")
	}
}

func TestFunctionFrame(t *testing.T) {
	res := resolve(t, `fn f(a: Float, b: Int, s: String) { let c = a; }`)
	p, err := New(JVM()).Program(res)
	if err != nil {
		t.Fatal(err)
	}
	f := frameNamed(t, p, "f")
	if f.MaxLocals != 6 {
		t.Fatalf("max locals = %d", f.MaxLocals)
	}
	want := []struct {
		name string
		slot int
		fam  Family
	}{{"a", 0, FamilyDouble}, {"b", 2, FamilyInt}, {"s", 3, FamilyRef}, {"c", 4, FamilyDouble}}
	if len(f.Locals) != len(want) {
		t.Fatalf("locals = %+v", f.Locals)
	}
	for i, w := range want {
		if l := f.Locals[i]; l.Name != w.name || l.Slot != w.slot || l.Family != w.fam {
			t.Errorf("local %d = %+v, want %+v", i, l, w)
		}
	}
	sig := types.Function("f", types.Unit(), types.Float(), types.Int(), types.String())
	if f.Descriptor != sig.Descriptor() {
		t.Errorf("descriptor = %q, want %q", f.Descriptor, sig.Descriptor())
	}
	if len(p.Functions) != 1 || p.Functions[0].Name != "f" {
		t.Errorf("functions = %+v", p.Functions)
	}
}

func TestNestedFunctionSlotsAreRelative(t *testing.T) {
	res := resolve(t, "fn g(y: Int): Int { return y; } { let x = 1; print(g(x)); }")
	p, err := New(JVM()).Program(res)
	if err != nil {
		t.Fatal(err)
	}
	g := frameNamed(t, p, "g")
	if len(g.Locals) != 1 || g.Locals[0].Slot != 0 || g.MaxLocals != 1 {
		t.Fatalf("g = %+v", g)
	}
	main := frameNamed(t, p, sema.MainFrame)
	if main.Descriptor != "" || len(main.Locals) != 1 || main.Locals[0].Name != "x" {
		t.Fatalf("main = %+v", main)
	}
}

func TestSiblingScopesShareSlots(t *testing.T) {
	res := resolve(t, "let g = 1; { let d = 2.0; } { let i = 1; let j = true; }")
	p, err := New(JVM()).Program(res)
	if err != nil {
		t.Fatal(err)
	}
	main := frameNamed(t, p, sema.MainFrame)
	if main.MaxLocals != 2 {
		t.Fatalf("max locals = %d", main.MaxLocals)
	}
	got := make(map[string]int)
	for _, l := range main.Locals {
		got[l.Name] = l.Slot
	}
	if got["d"] != 0 || got["i"] != 0 || got["j"] != 1 {
		t.Fatalf("slots = %v", got)
	}
	if len(p.Globals) != 1 || p.Globals[0].Name != "g" || !p.Globals[0].Final {
		t.Fatalf("globals = %+v", p.Globals)
	}
}

func TestFrameErrors(t *testing.T) {
	e := New(JVM())
	tests := []struct {
		name  string
		local symbols.Binding
		max   int
		want  LayoutErrorKind
	}{
		{"uninferred", symbols.Binding{Name: "u", Type: types.Infer()}, 1, LayoutErrUninferred},
		{"overflow", symbols.Binding{Name: "d", Slot: 0, Type: types.Float(), Width: symbols.WidthDouble}, 1, LayoutErrSlotOverflow},
		{"width", symbols.Binding{Name: "w", Type: types.Float(), Width: symbols.WidthSingle}, 2, LayoutErrWidthMismatch},
		{"max locals beyond u2", symbols.Binding{Name: "i", Type: types.Int(), Width: symbols.WidthSingle}, 1 << 16, LayoutErrSlotOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Frame(sema.Frame{Name: "f", MaxLocals: tt.max, Locals: []symbols.Binding{tt.local}})
			var le *LayoutError
			if !errors.As(err, &le) || le.Kind != tt.want {
				t.Fatalf("got %v", err)
			}
		})
	}
}
