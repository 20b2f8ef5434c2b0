// Package tree is the syntax-tree core: the Node
// interface every declaration/statement/type/value implements, the visitor
// protocol, debug formatting, and the Scope type nodes may own.
package tree

// Kind tags every concrete node type with a stable, debug-printable name.
// Kinds are interned the same way langtools/token.Kind is, so identity
// comparison and name comparison never disagree.
type Kind struct {
	name string
}

var kindRegistry = map[string]*Kind{}

// NewKind registers (or looks up) a node Kind by name.
func NewKind(name string) *Kind {
	if k, ok := kindRegistry[name]; ok {
		return k
	}
	k := &Kind{name: name}
	kindRegistry[name] = k
	return k
}

// Name returns the kind's registered name.
func (k *Kind) Name() string {
	if k == nil {
		return "<nil>"
	}
	return k.name
}

func (k *Kind) String() string { return k.Name() }
