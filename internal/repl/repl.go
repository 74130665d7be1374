// Package repl evaluates Zeron source one entry at a time. Globals and
// functions declared by an entry stay visible to the following ones; an
// entry that fails to parse or resolve leaves nothing behind.
package repl

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/eval"
	"zeron/internal/lexer"
	"zeron/internal/parser"
	"zeron/internal/sema"
	"zeron/internal/source"
	"zeron/internal/token"
	"zeron/internal/trace"
)

// Options configure a Repl.
type Options struct {
	Runtime        eval.Runtime
	MaxDiagnostics int
	MaxDepth       int
}

// Outcome is the result of one entry. Bag holds lexical, syntax and
// resolution diagnostics; RuntimeErr is set when execution failed.
type Outcome struct {
	Bag        *diag.Bag
	RuntimeErr *eval.RuntimeError
}

// OK reports whether the entry parsed, resolved and ran.
func (o Outcome) OK() bool {
	return !o.Bag.HasErrors() && o.RuntimeErr == nil
}

type Repl struct {
	fs      *source.FileSet
	b       *ast.Builder
	sess    *sema.Session
	in      *eval.Interpreter
	maxDiag int
	bag     *diag.Bag // диагностики текущего ввода
	entries int
}

// New starts an empty session.
func New(opts Options) *Repl {
	r := &Repl{
		fs:      source.NewFileSet(),
		b:       ast.NewBuilder(ast.Hints{}),
		maxDiag: opts.MaxDiagnostics,
	}
	r.sess = sema.NewSession(r.b, sema.Options{Reporter: entryReporter{r}})
	r.in = eval.New(r.b, eval.Options{Runtime: opts.Runtime, MaxDepth: opts.MaxDepth})
	return r
}

// FileSet holds every entry so far; diagnostics point into it.
func (r *Repl) FileSet() *source.FileSet { return r.fs }

// Eval parses, resolves and runs one entry. The error is for
// cancellation and internal failures only.
func (r *Repl) Eval(ctx context.Context, src string) (Outcome, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "repl_entry", trace.ParentFromContext(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	r.entries++
	r.bag = diag.NewBag(r.maxDiag)
	out := Outcome{Bag: r.bag}

	id := r.fs.AddVirtual(fmt.Sprintf("<repl:%d>", r.entries), []byte(src))
	rep := diag.BagReporter{Bag: r.bag}
	maxErrors, err := safecast.Conv[uint](max(r.maxDiag, 0))
	if err != nil {
		return out, err
	}
	lx := lexer.New(r.fs.Get(id), lexer.Options{Reporter: rep})
	pr := parser.ParseFile(ctx, r.fs, lx, r.b, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	if r.bag.HasErrors() {
		return out, nil
	}

	res := r.sess.Resolve(ctx, pr.File)
	if !res.OK() {
		return out, nil
	}

	err = r.in.Exec(ctx, pr.File, res)
	var re *eval.RuntimeError
	if errors.As(err, &re) {
		out.RuntimeErr = re
		return out, nil
	}
	return out, err
}

// entryReporter sends session diagnostics to the current entry's bag.
type entryReporter struct{ r *Repl }

func (e entryReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	diag.BagReporter{Bag: e.r.bag}.Report(code, sev, primary, msg, notes)
}

// Incomplete reports whether src leaves a brace or parenthesis open,
// so a line editor should keep reading.
func Incomplete(src string) bool {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("<probe>", []byte(src))), lexer.Options{})
	depth := 0
	for _, tok := range lx.All() {
		switch tok.Kind {
		case token.LBrace, token.LParen:
			depth++
		case token.RBrace, token.RParen:
			depth--
		}
	}
	return depth > 0
}
