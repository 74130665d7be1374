package symbols

// ScopeID identifies a scope record in the table's arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope: the global level.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// Global is the slot of bindings declared outside every scope.
const Global = -1
