package ast

import (
	"zeron/internal/source"
	"zeron/internal/types"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprAssign ExprKind = iota
	ExprBinary
	ExprCall
	ExprGroup
	ExprIf
	ExprLambda
	ExprLit
	ExprLogical
	ExprUnary
	ExprVariable
)

var exprKindNames = [...]string{
	ExprAssign:   "Assignment",
	ExprBinary:   "Binary",
	ExprCall:     "Call",
	ExprGroup:    "Grouping",
	ExprIf:       "If",
	ExprLambda:   "Lambda",
	ExprLit:      "Literal",
	ExprLogical:  "Logical",
	ExprUnary:    "Unary",
	ExprVariable: "Variable",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
	Type    TypeCell
}

// BinaryOp enumerates arithmetic and comparison operators.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryEq
	BinaryNotEq
	BinaryLt
	BinaryLtEq
	BinaryGt
	BinaryGtEq
)

var binaryOpNames = [...]string{
	BinaryAdd:   "+",
	BinarySub:   "-",
	BinaryMul:   "*",
	BinaryDiv:   "/",
	BinaryEq:    "==",
	BinaryNotEq: "!=",
	BinaryLt:    "<",
	BinaryLtEq:  "<=",
	BinaryGt:    ">",
	BinaryGtEq:  ">=",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// IsComparison reports whether op yields Boolean.
func (op BinaryOp) IsComparison() bool { return op >= BinaryEq }

// LogicalOp is and / or.
type LogicalOp uint8

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (op LogicalOp) String() string {
	if op == LogicalAnd {
		return "and"
	}
	return "or"
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryTypeof
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "not"
	default:
		return "typeof"
	}
}

// LitKind classifies literal expressions.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitTrue
	LitFalse
	LitNull
	LitUnit
	LitRange
)

// Type returns the static type fixed by the literal's lexical kind.
func (k LitKind) Type() types.Type {
	switch k {
	case LitInt:
		return types.Int()
	case LitFloat:
		return types.Float()
	case LitString:
		return types.String()
	case LitTrue, LitFalse:
		return types.Boolean()
	case LitNull:
		return types.Never().ToNullable()
	case LitRange:
		return types.Range()
	default:
		return types.Unit()
	}
}

type ExprAssignData struct {
	Name     string
	NameSpan source.Span
	Value    ExprID
}

type ExprBinaryData struct {
	Op     BinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprCallData struct {
	Callee     string
	CalleeSpan source.Span
	Args       []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// LambdaParam is an untyped lambda parameter.
type LambdaParam struct {
	Name string
	Span source.Span
}

// ExprLambdaData holds a lambda. An expression body is stored as a single
// return statement.
type ExprLambdaData struct {
	Params    []LambdaParam
	ArrowSpan source.Span
	Body      []StmtID
}

type ExprLiteralData struct {
	Kind  LitKind
	Text  string
	Int   int32
	Float float64
	Str   string
	// Lo and Hi are the inclusive bounds of a range literal.
	Lo, Hi int32
}

type ExprLogicalData struct {
	Op    LogicalOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
	// Synthetic marks the negation wrapped around an until condition.
	Synthetic bool
}

type ExprVariableData struct {
	Name string
}
