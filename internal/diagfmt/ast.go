package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"zeron/internal/ast"
	"zeron/internal/source"
)

type treeNode struct {
	label    string
	span     source.Span
	children []*treeNode
}

// ASTNodeOutput is the JSON shape of one tree node.
type ASTNodeOutput struct {
	Label    string          `json:"label"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil || int(span.File) >= fs.Len() {
		return fmt.Sprintf("%d-%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatASTPretty печатает дерево файла; resolved добавляет типы выражений.
func FormatASTPretty(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet, resolved bool) error {
	root, err := buildFileTree(b, fileID, resolved)
	if err != nil {
		return err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (span: %s)\n", root.label, formatSpan(root.span, fs))
	for i, c := range root.children {
		writeTree(&sb, c, "", i == len(root.children)-1, fs)
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeTree(sb *strings.Builder, n *treeNode, prefix string, last bool, fs *source.FileSet) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	sb.WriteString(prefix + branch + n.label)
	if n.span != (source.Span{}) {
		fmt.Fprintf(sb, " (span: %s)", formatSpan(n.span, fs))
	}
	sb.WriteByte('\n')
	for i, c := range n.children {
		writeTree(sb, c, prefix+next, i == len(n.children)-1, fs)
	}
}

// FormatASTJSON выводит дерево в JSON.
func FormatASTJSON(w io.Writer, b *ast.Builder, fileID ast.FileID, resolved bool) error {
	root, err := buildFileTree(b, fileID, resolved)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toOutput(root))
}

func toOutput(n *treeNode) ASTNodeOutput {
	out := ASTNodeOutput{Label: n.label, Span: n.span}
	for _, c := range n.children {
		out.Children = append(out.Children, toOutput(c))
	}
	return out
}

type treeBuilder struct {
	b        *ast.Builder
	resolved bool
}

func buildFileTree(b *ast.Builder, fileID ast.FileID, resolved bool) (*treeNode, error) {
	file := b.Files.Get(fileID)
	if file == nil {
		return nil, fmt.Errorf("file %d not found", fileID)
	}
	tb := treeBuilder{b: b, resolved: resolved}
	root := &treeNode{label: "File", span: file.Span}
	for _, id := range file.Stmts {
		root.children = append(root.children, tb.stmt(id))
	}
	return root, nil
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{label: fmt.Sprintf(format, args...)}
}

func (tb treeBuilder) stmts(label string, ids []ast.StmtID) *treeNode {
	n := &treeNode{label: label}
	for _, id := range ids {
		n.children = append(n.children, tb.stmt(id))
	}
	return n
}

func (tb treeBuilder) stmt(id ast.StmtID) *treeNode {
	st := tb.b.Stmts.Get(id)
	if st == nil {
		return leaf("<nil stmt>")
	}
	n := &treeNode{label: st.Kind.String(), span: st.Span}
	switch st.Kind {
	case ast.StmtBlock:
		d, _ := tb.b.Stmts.Block(id)
		for _, s := range d.Stmts {
			n.children = append(n.children, tb.stmt(s))
		}
	case ast.StmtExpr:
		d, _ := tb.b.Stmts.Expr(id)
		n.children = append(n.children, tb.expr(d.Expr))
	case ast.StmtPrint:
		d, _ := tb.b.Stmts.Print(id)
		n.children = append(n.children, tb.expr(d.Expr))
	case ast.StmtReturn:
		d, _ := tb.b.Stmts.Return(id)
		if d.Value.IsValid() {
			n.children = append(n.children, tb.expr(d.Value))
		}
	case ast.StmtLet:
		d, _ := tb.b.Stmts.Let(id)
		kw := "let mut"
		if d.Final {
			kw = "let"
		}
		n.label = fmt.Sprintf("%s %s %s", kw, d.Name, d.Type)
		if d.Init.IsValid() {
			n.children = append(n.children, tb.expr(d.Init))
		}
	case ast.StmtFn:
		d, _ := tb.b.Stmts.Fn(id)
		n.label = fmt.Sprintf("fn %s %s", d.Name, d.Sig)
		params := &treeNode{label: "Params"}
		for _, p := range d.Params {
			params.children = append(params.children, leaf("%s %s", p.Name, p.Type))
		}
		n.children = append(n.children, params, tb.stmts("Body", d.Body))
	case ast.StmtFor:
		d, _ := tb.b.Stmts.For(id)
		n.label = "For " + d.Name
		n.children = append(n.children, tb.expr(d.Iterable), tb.stmt(d.Body))
	case ast.StmtIf:
		d, _ := tb.b.Stmts.If(id)
		n.children = append(n.children, tb.expr(d.Cond), tb.stmt(d.Then))
		if d.Else.IsValid() {
			n.children = append(n.children, &treeNode{label: "Else", children: []*treeNode{tb.stmt(d.Else)}})
		}
	case ast.StmtWhile:
		d, _ := tb.b.Stmts.While(id)
		switch d.Flavor {
		case ast.LoopUntil:
			n.label = "Until"
		case ast.LoopForever:
			n.label = "Loop"
		}
		if d.Cond.IsValid() {
			n.children = append(n.children, tb.expr(d.Cond))
		}
		n.children = append(n.children, tb.stmt(d.Body))
	}
	return n
}

func (tb treeBuilder) expr(id ast.ExprID) *treeNode {
	e := tb.b.Exprs.Get(id)
	if e == nil {
		return leaf("<nil expr>")
	}
	n := &treeNode{label: e.Kind.String(), span: e.Span}
	switch e.Kind {
	case ast.ExprLit:
		d, _ := tb.b.Exprs.Literal(id)
		n.label = "Literal " + d.Text
	case ast.ExprVariable:
		d, _ := tb.b.Exprs.Variable(id)
		n.label = "Variable " + d.Name
	case ast.ExprAssign:
		d, _ := tb.b.Exprs.Assign(id)
		n.label = "Assignment " + d.Name
		n.children = append(n.children, tb.expr(d.Value))
	case ast.ExprBinary:
		d, _ := tb.b.Exprs.Binary(id)
		n.label = "Binary " + d.Op.String()
		n.children = append(n.children, tb.expr(d.Left), tb.expr(d.Right))
	case ast.ExprLogical:
		d, _ := tb.b.Exprs.Logical(id)
		n.label = "Logical " + d.Op.String()
		n.children = append(n.children, tb.expr(d.Left), tb.expr(d.Right))
	case ast.ExprUnary:
		d, _ := tb.b.Exprs.Unary(id)
		n.label = "Unary " + d.Op.String()
		if d.Synthetic {
			n.label += " (until)"
		}
		n.children = append(n.children, tb.expr(d.Operand))
	case ast.ExprGroup:
		d, _ := tb.b.Exprs.Group(id)
		n.children = append(n.children, tb.expr(d.Inner))
	case ast.ExprIf:
		d, _ := tb.b.Exprs.If(id)
		n.children = append(n.children, tb.expr(d.Cond), tb.expr(d.Then), tb.expr(d.Else))
	case ast.ExprCall:
		d, _ := tb.b.Exprs.Call(id)
		n.label = "Call " + d.Callee
		for _, a := range d.Args {
			n.children = append(n.children, tb.expr(a))
		}
	case ast.ExprLambda:
		d, _ := tb.b.Exprs.Lambda(id)
		names := make([]string, len(d.Params))
		for i, p := range d.Params {
			names[i] = p.Name
		}
		n.label = fmt.Sprintf("Lambda (%s)", strings.Join(names, ", "))
		n.children = append(n.children, tb.stmts("Body", d.Body))
	}
	if tb.resolved && e.Type.Resolved() {
		n.label += " : " + e.Type.Get().String()
	}
	return n
}
