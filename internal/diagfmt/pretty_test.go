package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"zeron/internal/diag"
	"zeron/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.zr", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.zr:1:9"},
		{"Relative path", PathModeRelative, "src/test.zr:1:9"},
		{"Basename only", PathModeBasename, "test.zr:1:9"},
		{"As given", PathModeAuto, "/home/user/project/src/test.zr:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.zr", []byte("let x: Int = true;\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaTypeMismatch, source.Span{File: fileID, Start: 13, End: 17}, "type mismatch"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})

	want := "main.zr:1:14: ERROR SEM3006: type mismatch\n" +
		"1 | let x: Int = true;\n" +
		"  |              ^~~~\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ctx.zr", []byte("let a = 1;\nlet b = 2;\nprint(c);\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaUnknownSymbol, source.Span{File: fileID, Start: 28, End: 29}, "unknown symbol 'c'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 5, PathMode: PathModeBasename})
	out := buf.String()
	for _, want := range []string{"1 | let a = 1;", "2 | let b = 2;", "3 | print(c);", "  |       ^\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "let s = \"日本\"; nope;\n"
	fileID := fs.AddVirtual("w.zr", []byte(src))
	start := uint32(strings.Index(src, "nope")) //nolint:gosec // small literal
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaUnknownSymbol, source.Span{File: fileID, Start: start, End: start + 4}, "unknown"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
	lines := strings.Split(buf.String(), "\n")
	// "let s = "日本"; " занимает 16 колонок: иероглифы двойной ширины
	if want := "  | " + strings.Repeat(" ", 16) + "^~~~"; lines[2] != want {
		t.Fatalf("caret line %q, want %q", lines[2], want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.zr", []byte("let x = 1;\nlet x = 2;\n"))

	d := diag.NewError(diag.SemaDuplicateSymbol, source.Span{File: fileID, Start: 15, End: 16}, "duplicate symbol 'x'").
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "first declared here")
	bag := diag.NewBag(4)
	bag.Add(d)

	tests := []struct {
		name  string
		notes bool
		want  bool
	}{
		{"shown", true, true},
		{"hidden", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: tt.notes})
			if got := strings.Contains(buf.String(), "note: test.zr:1:5: first declared here"); got != tt.want {
				t.Fatalf("note present = %v, output:\n%s", got, buf.String())
			}
		})
	}
}

func TestPrettyNoColorEscapes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.zr", []byte("x;"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.SemaUnknownSymbol, source.Span{File: fileID, Start: 0, End: 1}, "unknown"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("escape codes with color off: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("no escape codes with color on: %q", colored.String())
	}
}

func TestPrettyTimingsHasNoSnippet(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("t.zr", []byte("let a = 1;"))
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "check t.zr: 1.00 ms (parse 0.40, resolve 0.60)"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if want := "INFO OBS6001: check t.zr: 1.00 ms (parse 0.40, resolve 0.60)\n"; buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}
