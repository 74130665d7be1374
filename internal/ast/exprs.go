package ast

import (
	"zeron/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Assigns   *Arena[ExprAssignData]
	Binaries  *Arena[ExprBinaryData]
	Calls     *Arena[ExprCallData]
	Groups    *Arena[ExprGroupData]
	Ifs       *Arena[ExprIfData]
	Lambdas   *Arena[ExprLambdaData]
	Literals  *Arena[ExprLiteralData]
	Logicals  *Arena[ExprLogicalData]
	Unaries   *Arena[ExprUnaryData]
	Variables *Arena[ExprVariableData]
}

// NewExprs creates per-kind arenas preallocated to capHint (1<<8 when 0).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Assigns:   NewArena[ExprAssignData](capHint / 4),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Calls:     NewArena[ExprCallData](capHint / 4),
		Groups:    NewArena[ExprGroupData](capHint / 4),
		Ifs:       NewArena[ExprIfData](capHint / 8),
		Lambdas:   NewArena[ExprLambdaData](capHint / 8),
		Literals:  NewArena[ExprLiteralData](capHint),
		Logicals:  NewArena[ExprLogicalData](capHint / 8),
		Unaries:   NewArena[ExprUnaryData](capHint / 4),
		Variables: NewArena[ExprVariableData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewAssign(span source.Span, name string, nameSpan source.Span, value ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{Name: name, NameSpan: nameSpan, Value: value}))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, callee string, calleeSpan source.Span, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, CalleeSpan: calleeSpan, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(ExprGroupData{Inner: inner}))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	p, ok := e.payload(id, ExprIf)
	if !ok {
		return nil, false
	}
	return e.Ifs.Get(p), true
}

func (e *Exprs) NewLambda(span source.Span, params []LambdaParam, arrow source.Span, body []StmtID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Params: params, ArrowSpan: arrow, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return e.Lambdas.Get(p), true
}

// NewLiteral stores a fully decoded literal.
func (e *Exprs) NewLiteral(span source.Span, data ExprLiteralData) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(data))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

func (e *Exprs) NewLogical(span source.Span, op LogicalOp, left, right ExprID) ExprID {
	return e.new(ExprLogical, span, e.Logicals.Allocate(ExprLogicalData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Logical(id ExprID) (*ExprLogicalData, bool) {
	p, ok := e.payload(id, ExprLogical)
	if !ok {
		return nil, false
	}
	return e.Logicals.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID, synthetic bool) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand, Synthetic: synthetic}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewVariable(span source.Span, name string) ExprID {
	return e.new(ExprVariable, span, e.Variables.Allocate(ExprVariableData{Name: name}))
}

func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	p, ok := e.payload(id, ExprVariable)
	if !ok {
		return nil, false
	}
	return e.Variables.Get(p), true
}
