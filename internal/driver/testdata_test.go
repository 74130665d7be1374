package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zeron/internal/eval"
)

func TestGoldenPrograms(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "run", "*.zr"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no testdata programs")
	}
	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			want, err := os.ReadFile(strings.TrimSuffix(p, ".zr") + ".out")
			if err != nil {
				t.Fatal(err)
			}
			var out bytes.Buffer
			res, err := Run(context.Background(), p, RunOptions{
				Check:   CheckOptions{MaxDiagnostics: 8},
				Runtime: eval.BufferRuntime{Out: &out},
			})
			if err != nil {
				t.Fatal(err)
			}
			if code := res.ExitCode(); code != ExitOK {
				t.Fatalf("exit = %d, diagnostics %+v", code, res.Bag.Items())
			}
			if out.String() != string(want) {
				t.Fatalf("output = %q, want %q", out.String(), want)
			}
		})
	}
}

func TestErrorPrograms(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "errors")
	tests := []struct {
		file string
		exit int
	}{
		{"mismatch.zr", ExitResolve},
		{"unknown.zr", ExitResolve},
		{"final.zr", ExitRuntime},
		{"syntax.zr", ExitSyntax},
		{"nested_fn.zr", ExitSyntax},
		{"capture.zr", ExitResolve},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			res, err := Run(context.Background(), filepath.Join(dir, tt.file), RunOptions{
				Check:   CheckOptions{MaxDiagnostics: 8},
				Runtime: eval.BufferRuntime{Out: &bytes.Buffer{}},
			})
			if err != nil {
				t.Fatal(err)
			}
			if got := res.ExitCode(); got != tt.exit {
				t.Fatalf("exit = %d, want %d", got, tt.exit)
			}
		})
	}
}
