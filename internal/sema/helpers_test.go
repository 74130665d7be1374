package sema

import (
	"context"
	"testing"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/lexer"
	"zeron/internal/parser"
	"zeron/internal/source"
	"zeron/internal/testkit"
)

type resolved struct {
	b    *ast.Builder
	file ast.FileID
	res  Result
}

func parseOnly(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zr", []byte(src))
	bag := diag.NewBag(32)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(context.Background(), fs, lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), b, parser.Options{MaxErrors: 32, Reporter: rep})
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Errorf("parse: %s", d.Message)
		}
		t.FailNow()
	}
	return b, pr.File
}

func resolveSource(t *testing.T, src string) resolved {
	t.Helper()
	b, file := parseOnly(t, src)
	res := Resolve(context.Background(), b, file, Options{})
	return resolved{b: b, file: file, res: res}
}

// mustResolve also checks the post-resolution invariants.
func mustResolve(t *testing.T, src string) resolved {
	t.Helper()
	r := resolveSource(t, src)
	if r.res.Err != nil {
		t.Fatalf("unexpected resolution error: %v", r.res.Err)
	}
	if err := testkit.CheckResolved(r.b, r.file); err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckTable(r.res.Table); err != nil {
		t.Fatal(err)
	}
	return r
}

func (r resolved) stmt(i int) ast.StmtID {
	return r.b.Files.Get(r.file).Stmts[i]
}

// findCall returns the first call to name outside lambda bodies.
func (r resolved) findCall(t *testing.T, name string) ast.ExprID {
	t.Helper()
	found := ast.NoExprID
	r.b.WalkFile(r.file, ast.WalkOptions{SkipLambdaBodies: true}, func(id ast.ExprID, e *ast.Expr) bool {
		if c, ok := r.b.Exprs.Call(id); ok && c.Callee == name && !found.IsValid() {
			found = id
		}
		return true
	})
	if !found.IsValid() {
		t.Fatalf("no call to %s", name)
	}
	return found
}
