package tree

// Scope is a name -> declaring-node map with visibility rules, owned by the
// node that defines it and living exactly as long as that node.
//
// The three flags gate how the symbol-resolution handler (langtools/scope.Handler) treats
// insertion and lookup:
//
//   - Unordered: every child's DeclaredSymbolName is inserted before the
//     scope's subtree is descended into, enabling forward references among
//     sibling declarations (used for translation units and namespaces).
//   - AllowShadowingWithin: a duplicate key is not a redeclaration error.
//   - AllowShadowingParent: a key already visible via an enclosing scope may
//     be redeclared without error.
type Scope struct {
	Unordered            bool
	AllowShadowingWithin bool
	AllowShadowingParent bool

	entries map[string]Node
}

// NewScope returns an empty Scope with the given flags.
func NewScope(unordered, allowShadowingWithin, allowShadowingParent bool) *Scope {
	return &Scope{
		Unordered:            unordered,
		AllowShadowingWithin: allowShadowingWithin,
		AllowShadowingParent: allowShadowingParent,
		entries:              make(map[string]Node),
	}
}

// Insert adds key -> value. It reports false (without modifying the scope)
// if key is already bound to a different node and AllowShadowingWithin is
// false; re-inserting the same binding is a no-op success, which keeps
// symbol resolution idempotent over a stable tree.
func (s *Scope) Insert(key string, value Node) bool {
	if value == nil {
		return false
	}

	if existing, exists := s.entries[key]; exists {
		if existing == value {
			return true
		}
		if !s.AllowShadowingWithin {
			return false
		}
	}

	s.entries[key] = value
	return true
}

// Get returns the node declared under key in this scope only (not parent
// scopes), and whether it was found.
func (s *Scope) Get(key string) (Node, bool) {
	n, ok := s.entries[key]
	return n, ok
}

// Remove deletes key from this scope, reporting whether it was present.
func (s *Scope) Remove(key string) bool {
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Keys returns the scope's declared names. Order is unspecified; callers
// needing deterministic order (e.g. struct-field codegen) should not rely on
// Scope for ordering -- use the declaring node's own slice fields instead.
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
