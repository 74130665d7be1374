package ast

import (
	"zeron/internal/source"
	"zeron/internal/types"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtBreak
	StmtExpr
	StmtFor
	StmtFn
	StmtIf
	StmtPrint
	StmtReturn
	StmtLet
	StmtWhile
)

var stmtKindNames = [...]string{
	StmtBlock:  "Block",
	StmtBreak:  "Break",
	StmtExpr:   "Expression",
	StmtFor:    "For",
	StmtFn:     "Function",
	StmtIf:     "If",
	StmtPrint:  "Print",
	StmtReturn: "Return",
	StmtLet:    "Var",
	StmtWhile:  "While",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StmtKind(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtForData struct {
	Name     string
	NameSpan source.Span
	Iterable ExprID
	Body     StmtID
}

// FnParam is a typed function parameter.
type FnParam struct {
	Name string
	Span source.Span
	Type types.Type
}

// StmtFnData is a top-level function. Sig is the full Function type; an
// `= expr;` body has an Infer return and a single return statement.
type StmtFnData struct {
	Name     string
	NameSpan source.Span
	Params   []FnParam
	Sig      types.Type
	Body     []StmtID
	ExprBody bool
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID when absent
}

type StmtPrintData struct {
	Expr ExprID
}

type StmtReturnData struct {
	Value ExprID // NoExprID for a bare return
}

// StmtLetData is a variable declaration. Type is Infer when not annotated.
type StmtLetData struct {
	Name     string
	NameSpan source.Span
	Type     types.Type
	Init     ExprID
	Final    bool
}

// LoopFlavor tells which keyword introduced a while statement.
type LoopFlavor uint8

const (
	LoopWhile LoopFlavor = iota
	// LoopUntil keeps the negated condition in Cond.
	LoopUntil
	// LoopForever has no condition.
	LoopForever
)

type StmtWhileData struct {
	Flavor LoopFlavor
	Cond   ExprID
	Body   StmtID
}
