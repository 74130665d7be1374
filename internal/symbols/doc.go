// Package symbols is the scope-addressable symbol table of the resolver.
//
// Names live in one flat map keyed by identifier text, so a live name
// cannot be redeclared in a nested scope. Locals additionally get slots in
// the local variable table (LVT); a double-width local owns two
// consecutive slots that both map to its name. Scopes only count how many
// LVT entries they own, which makes EndScope proportional to the scope,
// not to the table.
package symbols
