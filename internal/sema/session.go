package sema

import (
	"context"

	"zeron/internal/ast"
	"zeron/internal/symbols"
)

// Session resolves a sequence of files against one symbol table, one
// REPL entry at a time. A failed file leaves no declarations behind.
type Session struct {
	r    *resolver
	res  Result
	opts Options
}

// NewSession starts a session at the global level of an empty program.
func NewSession(b *ast.Builder, opts Options) *Session {
	s := &Session{opts: opts}
	s.res = Result{
		Table:     symbols.NewTable(opts.Hints),
		CallSites: make(map[ast.ExprID]int),
	}
	s.r = newResolver(b, &s.res)
	return s
}

// Resolve types file against everything resolved so far. Frames are
// not collected for session input.
func (s *Session) Resolve(ctx context.Context, file ast.FileID) Result {
	f := s.r.b.Files.Get(file)
	if f == nil {
		return s.res
	}
	snap := s.r.table.Snapshot()
	if !s.r.file(ctx, f, s.opts.Reporter) {
		s.r.table.Rollback(snap)
		s.r.reset()
	}
	return s.res
}

// reset drops the per-statement state a failed resolution left behind.
func (r *resolver) reset() {
	r.fns = r.fns[:0]
	r.inst = nil
	clear(r.active)
	if n := r.table.NumRetired(); len(r.claimed) > n {
		r.claimed = r.claimed[:n]
	}
}
