package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Scope records how many LVT entries it owns. Parent links by index.
type Scope struct {
	Parent ScopeID
	Size   int
}

// Scopes is the arena of scope records. Records are never freed; a popped
// scope simply stops being reachable from the current one.
type Scopes struct {
	data []Scope
}

func NewScopes(capHint uint32) *Scopes {
	return &Scopes{data: make([]Scope, 0, capHint)}
}

// New allocates a scope and returns its 1-based ID.
func (s *Scopes) New(parent ScopeID) ScopeID {
	s.data = append(s.data, Scope{Parent: parent})
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	return ScopeID(n)
}

func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) > len(s.data) {
		return nil
	}
	return &s.data[id-1]
}

// Len reports how many scope records were ever allocated.
func (s *Scopes) Len() int { return len(s.data) }
