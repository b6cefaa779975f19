package walk

// Scope is a node of the symbol table.  It maps names to slot indices local to
// the node and links to the scope it is nested in.  A scope never modifies its
// parent: many child scopes may share one parent and only read through it.
type Scope struct {
	// The enclosing scope.  This is nil for the global scope.
	parent *Scope

	// The slot index of every name declared in this scope.
	slots map[string]int

	// The slot index given to the next new name.
	nextSlot int
}

// NewGlobalScope creates an empty root scope.
func NewGlobalScope() *Scope {
	return &Scope{slots: make(map[string]int)}
}

// NewScope creates a child scope of parent holding the parameters of a
// function arm.  Each parameter takes the slot of its position in the list;
// an empty name marks a position that binds nothing (eg. a literal pattern).
func NewScope(parent *Scope, params []string) *Scope {
	s := &Scope{
		parent:   parent,
		slots:    make(map[string]int, len(params)),
		nextSlot: len(params),
	}

	for i, name := range params {
		if name != "" {
			s.slots[name] = i
		}
	}

	return s
}

// Add declares a name in this scope and returns its slot.  If the name is
// already declared in this scope, its existing slot is returned.
func (s *Scope) Add(name string) int {
	if slot, ok := s.slots[name]; ok {
		return slot
	}

	slot := s.nextSlot
	s.slots[name] = slot
	s.nextSlot++
	return slot
}

// Lookup resolves a name by walking from this scope outward to the root.  It
// returns the slot of the first declaration found and the number of parent
// hops taken to reach it.
func (s *Scope) Lookup(name string) (slot, depth int, ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if slot, ok := cur.slots[name]; ok {
			return slot, depth, true
		}

		depth++
	}

	return 0, 0, false
}

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Len returns the number of names declared directly in this scope.
func (s *Scope) Len() int {
	return len(s.slots)
}
