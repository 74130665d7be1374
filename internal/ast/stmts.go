package ast

import (
	"zeron/internal/source"
)

type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[StmtBlockData]
	Exprs   *Arena[StmtExprData]
	Fors    *Arena[StmtForData]
	Fns     *Arena[StmtFnData]
	Ifs     *Arena[StmtIfData]
	Prints  *Arena[StmtPrintData]
	Returns *Arena[StmtReturnData]
	Lets    *Arena[StmtLetData]
	Whiles  *Arena[StmtWhileData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[StmtBlockData](capHint / 4),
		Exprs:   NewArena[StmtExprData](capHint / 2),
		Fors:    NewArena[StmtForData](capHint / 8),
		Fns:     NewArena[StmtFnData](capHint / 8),
		Ifs:     NewArena[StmtIfData](capHint / 8),
		Prints:  NewArena[StmtPrintData](capHint / 4),
		Returns: NewArena[StmtReturnData](capHint / 4),
		Lets:    NewArena[StmtLetData](capHint / 2),
		Whiles:  NewArena[StmtWhileData](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, 0)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewFn(span source.Span, data StmtFnData) StmtID {
	return s.new(StmtFn, span, s.Fns.Allocate(data))
}

func (s *Stmts) Fn(id StmtID) (*StmtFnData, bool) {
	p, ok := s.payload(id, StmtFn)
	if !ok {
		return nil, false
	}
	return s.Fns.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewPrint(span source.Span, expr ExprID) StmtID {
	return s.new(StmtPrint, span, s.Prints.Allocate(StmtPrintData{Expr: expr}))
}

func (s *Stmts) Print(id StmtID) (*StmtPrintData, bool) {
	p, ok := s.payload(id, StmtPrint)
	if !ok {
		return nil, false
	}
	return s.Prints.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	return s.new(StmtLet, span, s.Lets.Allocate(data))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	p, ok := s.payload(id, StmtLet)
	if !ok {
		return nil, false
	}
	return s.Lets.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, flavor LoopFlavor, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(StmtWhileData{Flavor: flavor, Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}
