package tree

// SymbolRef is embedded by node types that reference a symbol by name
// (forgec/ast's TypeSymbol and ValueSymbol). It implements the
// ReferencedSymbolName/ResolveSymbol/ResolvedSymbol trio so concrete node
// types only need to store the name itself.
type SymbolRef struct {
	Name     string
	resolved Node
}

// ReferencedSymbolName implements part of Node.
func (r *SymbolRef) ReferencedSymbolName() (string, bool) {
	if r.Name == "" {
		return "", false
	}
	return r.Name, true
}

// ResolveSymbol implements part of Node.
func (r *SymbolRef) ResolveSymbol(target Node) {
	r.resolved = target
}

// ResolvedSymbol implements part of Node.
func (r *SymbolRef) ResolvedSymbol() (Node, bool) {
	if r.resolved == nil {
		return nil, false
	}
	return r.resolved, true
}
