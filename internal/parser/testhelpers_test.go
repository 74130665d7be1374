package parser

import (
	"context"
	"testing"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/lexer"
	"zeron/internal/source"
)

type parsed struct {
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
	res  Result
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zr", []byte(src))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(context.Background(), fs, lx, b, Options{MaxErrors: 100, Reporter: rep})
	return parsed{b: b, file: res.File, bag: bag, res: res}
}

func mustParse(t *testing.T, src string) parsed {
	t.Helper()
	p := parseSource(t, src)
	if p.bag.HasErrors() {
		for _, d := range p.bag.Items() {
			t.Errorf("unexpected diagnostic: %s", d.Message)
		}
		t.FailNow()
	}
	return p
}

func (p parsed) stmts() []ast.StmtID {
	return p.b.Files.Get(p.file).Stmts
}

// exprOf returns the expression of the i-th top-level expression statement.
func (p parsed) exprOf(t *testing.T, i int) ast.ExprID {
	t.Helper()
	st, ok := p.b.Stmts.Expr(p.stmts()[i])
	if !ok {
		t.Fatalf("stmt %d is not an expression statement", i)
	}
	return st.Expr
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func parseWithLimit(t *testing.T, src string, limit uint) uint {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zr", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	res := ParseFile(context.Background(), fs, lx, ast.NewBuilder(ast.Hints{}), Options{MaxErrors: limit})
	return res.Errors
}
