package repl

import (
	"bytes"
	"context"
	"testing"

	"zeron/internal/diag"
	"zeron/internal/eval"
)

type step struct {
	src  string
	out  string
	code diag.Code // ожидаемая ошибка; 0 - успех
}

func runSteps(t *testing.T, steps []step) {
	t.Helper()
	var out bytes.Buffer
	r := New(Options{Runtime: eval.BufferRuntime{Out: &out}, MaxDiagnostics: 8})
	for i, s := range steps {
		out.Reset()
		res, err := r.Eval(context.Background(), s.src)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		var got diag.Code
		switch {
		case res.RuntimeErr != nil:
			got = res.RuntimeErr.Code
		case res.Bag.HasErrors():
			got = res.Bag.Items()[0].Code
		}
		if got != s.code {
			t.Fatalf("step %d (%q): code %v, want %v; bag %v", i, s.src, got, s.code, res.Bag.Items())
		}
		if out.String() != s.out {
			t.Fatalf("step %d (%q): output %q, want %q", i, s.src, out.String(), s.out)
		}
	}
}

func TestEntriesShareGlobals(t *testing.T) {
	runSteps(t, []step{
		{src: "let mut n = 1;"},
		{src: "fn inc(x: Int) = x + n;"},
		{src: "n = 10;"},
		{src: "print(inc(5));", out: "15\n"},
	})
}

func TestFailedEntryLeavesNothing(t *testing.T) {
	runSteps(t, []step{
		{src: "let a = 1; let b: Int = true;", code: diag.SemaTypeMismatch},
		// a не пережил неудачный ввод
		{src: "print(a);", code: diag.SemaUnknownSymbol},
		{src: "let a = 2; print(a);", out: "2\n"},
	})
}

func TestSyntaxAndRuntimeErrors(t *testing.T) {
	runSteps(t, []step{
		{src: "let = ;", code: diag.SynExpectIdentifier},
		{src: "let x = 1;"},
		{src: "x = 2;", code: diag.RunFinalReassign},
		{src: "print(x);", out: "1\n"},
		{src: "print(1 / 0);", code: diag.RunDivisionByZero},
	})
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"let x = 1;", false},
		{"fn f() {", true},
		{"fn f() {\n  print((1", true},
		{"fn f() {\n  print(1);\n}", false},
		{"}", false},
	}
	for _, tt := range tests {
		if got := Incomplete(tt.src); got != tt.want {
			t.Errorf("Incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
