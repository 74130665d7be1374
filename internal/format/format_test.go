package format

import (
	"errors"
	"testing"

	"zeron/internal/source"
)

func formatString(t *testing.T, src string, opt Options) string {
	t.Helper()
	fs := source.NewFileSet()
	out, err := Source(fs.Get(fs.AddVirtual("f.zr", []byte(src))), opt)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"statements split", "let   x=1;print(x)  ;", "let x = 1;\nprint(x);\n"},
		{"function body", "fn sq(x:Int):Int{return x*x;}", "fn sq(x: Int): Int {\n    return x * x;\n}\n"},
		{"empty body", "fn f( ) { }", "fn f() {}\n"},
		{"else joins brace", "if (a) { print(1); }\nelse { print(2); }", "if (a) {\n    print(1);\n} else {\n    print(2);\n}\n"},
		{"unary minus", "print( - x);let y=1- -2;", "print(-x);\nlet y = 1 - -2;\n"},
		{"range", "for (let i in 1 .. 3) print(i);", "for (let i in 1..3) print(i);\n"},
		{"lambda", "let f = x->x+1;", "let f = x -> x + 1;\n"},
		{"block lambda", "let f = x -> { return x; } ;", "let f = x -> {\n    return x;\n};\n"},
		{"nullable annotation", "let a : Foo ? = null;", "let a: Foo? = null;\n"},
		{"function type", "let g:(Int)->Int = x -> x;", "let g: (Int) -> Int = x -> x;\n"},
		{"comparison keeps spaces", "print(1<2);print(a > b);", "print(1<2);\nprint(a > b);\n"},
		{"blank lines collapse", "let x = 1;\n\n\n\nlet y = 2;\n", "let x = 1;\n\nlet y = 2;\n"},
		{"comments kept", "// head\nlet x = 1; // trailing\n\n\nlet y = /* v */ 2;", "// head\nlet x = 1; // trailing\n\nlet y = /* v */ 2;\n"},
		{"comment in block", "fn f() {\nprint(1);\n// last\n}", "fn f() {\n    print(1);\n    // last\n}\n"},
		{"nested blocks", "while (true) { loop { break; } }", "while (true) {\n    loop {\n        break;\n    }\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatString(t, tt.src, Options{}); got != tt.want {
				t.Fatalf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestIndentOptions(t *testing.T) {
	src := "fn f() { print(1); }"
	if got := formatString(t, src, Options{UseTabs: true}); got != "fn f() {\n\tprint(1);\n}\n" {
		t.Fatalf("tabs: %q", got)
	}
	if got := formatString(t, src, Options{IndentWidth: 2}); got != "fn f() {\n  print(1);\n}\n" {
		t.Fatalf("width 2: %q", got)
	}
}

func TestLexErrorRejected(t *testing.T) {
	fs := source.NewFileSet()
	_, err := Source(fs.Get(fs.AddVirtual("bad.zr", []byte("let x = 1 # 2;"))), Options{})
	if !errors.Is(err, ErrLex) {
		t.Fatalf("err = %v, want ErrLex", err)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	srcs := []string{
		"fn fib(n:Int):Int{if(n<2)return n;return fib(n-1)+fib(n-2);}\nfor(let i in 0..9)print(fib(i));",
		"let mut i = 0; until (i == 3) { i += 1; } // done",
		"/* header\n   block */\nlet f: (Int, Float) -> Unit = (a) -> { print(a); };",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		if err := CheckRoundTrip(fs.Get(fs.AddVirtual("r.zr", []byte(src))), Options{}); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}
