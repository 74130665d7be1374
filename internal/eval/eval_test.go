package eval

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/lexer"
	"zeron/internal/parser"
	"zeron/internal/sema"
	"zeron/internal/source"
)

func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zr", []byte(src))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(context.Background(), fs, lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), b, parser.Options{MaxErrors: 16, Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse: %s", bag.Items()[0].Message)
	}
	res := sema.Resolve(context.Background(), b, pr.File, sema.Options{})
	if res.Err != nil {
		t.Fatalf("resolve: %v", res.Err)
	}
	var out bytes.Buffer
	rt := BufferRuntime{Out: &out, Clock: time.Unix(1700000000, 0)}
	err := Run(context.Background(), b, pr.File, res, Options{Runtime: rt})
	return out.String(), err
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int arithmetic", "print(1 + 2 * 3); print(7 / 2); print(-(4 - 6));", "7\n3\n2\n"},
		{"int wraps", "print(2147483647 + 1);", "-2147483648\n"},
		{"floats", "print(3.0); print(1.5 * 2.0); print(0.1 + 0.2); print(10000000.0); print(0.0001);", "3.0\n3.0\n0.30000000000000004\n1.0E7\n1.0E-4\n"},
		{"float division by zero", "print(1.0 / 0.0);", "Infinity\n"},
		{"strings", `let s = "ab"; print(s + "c");`, "abc\n"},
		{"concat stays NFC", "print(\"e\" + \"\u0301\");", "\u00e9\n"},
		{"booleans", "print(1 < 2); print(true and false); print(not true or true);", "true\nfalse\ntrue\n"},
		{"equality", `print(1 == 1); print("a" != "a"); print(2.0 == 2.0);`, "true\nfalse\ntrue\n"},
		{"short circuit", "fn boom(): Boolean { print(0); return true; } print(false and boom()); print(true or boom());", "false\ntrue\n"},
		{"if expression", "print(if (1 > 2) then 10 else 20);", "20\n"},
		{"if else", "let n = 3; if (n > 2) print(1); else print(2);", "1\n"},
		{"while", "let mut i = 0; while (i < 3) { print(i); i += 1; }", "0\n1\n2\n"},
		{"until", "let mut i = 3; until (i == 0) { i -= 1; } print(i);", "0\n"},
		{"loop break", "let mut i = 0; loop { i += 1; if (i == 4) break; } print(i);", "4\n"},
		{"range", "for (let i in 1..3) print(i);", "1\n2\n3\n"},
		{"descending range", "for (let i in 3..1) print(i);", "3\n2\n1\n"},
		{"range value", "let r = 1..4; print(r);", "Range[1 - 4 step 1]\n"},
		{"break in for", "for (let i in 1..10) { if (i == 3) break; print(i); }", "1\n2\n"},
		{"function", "fn sq(x: Int): Int { return x * x; } print(sq(5));", "25\n"},
		{"recursion", "fn fact(n: Int): Int { if (n < 2) return 1; return n * fact(n - 1); } print(fact(10));", "3628800\n"},
		{"expression body", "fn half(x: Float) = x / 2.0; print(half(5.0));", "2.5\n"},
		{"return from loop", "fn first(): Int { for (let i in 5..9) { if (i > 6) return i; } return 0; } print(first());", "7\n"},
		{"unit function", "fn hi() { print(1); } print(hi());", "1\nUnit\n"},
		{"lambda", "let inc = a -> a + 1; print(inc(41));", "42\n"},
		{"lambda two instances", "let id = a -> a; print(id(1)); print(id(2.5));", "1\n2.5\n"},
		{"block lambda", "let f = x -> { let y = x * 2; return y + 1; }; print(f(4));", "9\n"},
		{"annotated lambda", "let f: (Int) -> Int = x -> x * 3; print(f(2));", "6\n"},
		{"lambda as argument", "fn apply(g: (Int) -> Int, v: Int): Int { return g(v); } let inc = a -> a + 1; print(apply(inc, 2));", "3\n"},
		{"closure captures", "let base = 10; let add = x -> x + base; print(add(5));", "15\n"},
		{"closure captures enclosing local", "{ let z = 1; let f = a -> a + z; { let w = 2; print(f(w)); } }", "3\n"},
		{"lambda reads global declared later", "let f = a -> a + z; let z = 1; print(f(2));", "3\n"},
		{"annotated lambda reassigned", "let mut f: (Int) -> Int = x -> x; f = y -> y * 2; print(f(4));", "8\n"},
		{"function value", "fn sq(x: Int): Int { return x * x; } let g = sq; print(g(3)); print(g);", "9\n<fn sq>\n"},
		{"clock", "print(clock());", "1700000000\n"},
		{"clock value", "print(clock);", "<native fn clock>\n"},
		{"null", "let a: Foo? = null; print(a);", "null\n"},
		{"typeof variable", "let x = 1; print(typeof x);", ":Int\n"},
		{"typeof value", `print(typeof 1.5); print(typeof "s");`, "Double\nString\n"},
		{"compound assign", "let mut n = 2; n *= 5; n -= 1; print(n);", "9\n"},
		{"assignment is an expression", "let mut a = 0; let mut b = 0; a = b = 3; print(a + b);", "6\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runSource(t, tt.src)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   diag.Code
		output string
	}{
		{"final reassign", "let x = 1; print(x); x = 2;", diag.RunFinalReassign, "1\n"},
		{"loop variable is final", "for (let i in 1..2) { i = 5; }", diag.RunFinalReassign, ""},
		{"division by zero", "let z = 0; print(1 / z);", diag.RunDivisionByZero, ""},
		{"stack overflow", "fn down(n: Int): Int { return down(n + 1); } print(down(0));", diag.RunStackOverflow, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runSource(t, tt.src)
			var re *RuntimeError
			if !errors.As(err, &re) {
				t.Fatalf("want *RuntimeError, got %v", err)
			}
			if re.Code != tt.want {
				t.Fatalf("code = %s, want %s", re.Code.ID(), tt.want.ID())
			}
			if got != tt.output {
				t.Fatalf("output before the error = %q", got)
			}
		})
	}
}

func TestBacktrace(t *testing.T) {
	_, err := runSource(t, "fn inner(a: Int): Int { return 1 / a; }\nfn outer(): Int { return inner(0); }\nprint(outer());")
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("got %v", err)
	}
	if len(re.Backtrace) != 2 || re.Backtrace[0].FuncName != "inner" || re.Backtrace[1].FuncName != "outer" {
		t.Fatalf("backtrace = %+v", re.Backtrace)
	}
	text := re.FormatWithFiles(nil)
	if !strings.HasPrefix(text, "/ by zero\n[line 0]") {
		t.Fatalf("formatted = %q", text)
	}
}

func TestCancelledContextStopsLoop(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("spin.zr", []byte("loop { }"))
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(context.Background(), fs, lexer.New(fs.Get(id), lexer.Options{}), b, parser.Options{})
	res := sema.Resolve(context.Background(), b, pr.File, sema.Options{})
	if !res.OK() {
		t.Fatal(res.Err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, b, pr.File, res, Options{Runtime: BufferRuntime{Out: &bytes.Buffer{}}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{-2.5, "-2.5"},
		{1e-3, "0.001"},
		{9999999, "9999999.0"},
		{1.25e10, "1.25E10"},
		{-3e-5, "-3.0E-5"},
	}
	for _, tt := range tests {
		if got := formatDouble(tt.in); got != tt.want {
			t.Errorf("formatDouble(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
