package tree

import "github.com/sophie-lund/forge/langtools/source"

// Node is the closed-sum interface every syntax-tree node implements.
// Concrete node types live in forgec/ast; this package only defines the
// shared protocol and the Base struct most of them embed.
type Node interface {
	// Kind returns the node's tag, used for debug output and dispatch.
	Kind() *Kind

	// Range returns the node's source range. May be empty for synthesized
	// nodes (e.g. a Cast inserted by the implicit-cast pass).
	Range() source.Range

	// Children returns this node's owned children, in declaration order.
	// Leaf nodes return nil. Walk and the pass manager (langtools/pass) use
	// this as their single source of truth for traversal, rather than each
	// node implementing its own visitor-dispatch method.
	Children() []Node

	// SetChild replaces the i-th entry of Children() with n. It is used
	// exclusively by the pass manager to apply handler-requested node
	// replacements; i is always an index previously returned by
	// Children() on the same node.
	SetChild(i int, n Node)

	// Clone produces a deep copy: every interior owning edge is a fresh
	// node, and clone(n).Compare(n) is always true.
	Clone() Node

	// Compare reports structural equality of semantic payload. It ignores
	// source ranges and any codegen-annotation fields.
	Compare(other Node) bool

	// FormatDebug writes this node's kind label and fields to f.
	FormatDebug(f *DebugFormatter)

	// DeclaredSymbolName returns the name this node introduces into its
	// enclosing scope, if any.
	DeclaredSymbolName() (string, bool)

	// ReferencedSymbolName returns the name this node looks up in the active
	// scope chain, if any.
	ReferencedSymbolName() (string, bool)

	// ResolveSymbol stores a non-owning reference to the declaration this
	// node's ReferencedSymbolName resolved to. Only meaningful for nodes
	// that return true from ReferencedSymbolName; others ignore the call.
	ResolveSymbol(target Node)

	// ResolvedSymbol returns the declaration previously passed to
	// ResolveSymbol, if any.
	ResolvedSymbol() (Node, bool)

	// GetScope returns the Scope this node owns, if it defines one.
	GetScope() (*Scope, bool)
}

// Base is embedded by every concrete node type. It carries the two fields
// every node has (kind, source range) and supplies default no-op
// implementations of the optional symbol/scope hooks, which a concrete type
// overrides by declaring its own method of the same name -- the embedding
// promotion is shadowed automatically by Go's method resolution rules.
type Base struct {
	NodeKind  *Kind
	NodeRange source.Range
}

// Kind implements Node.
func (b *Base) Kind() *Kind { return b.NodeKind }

// Range implements Node.
func (b *Base) Range() source.Range { return b.NodeRange }

// Children is the default: a leaf node with no owned children. Node types
// with children override this method.
func (b *Base) Children() []Node { return nil }

// SetChild is the default: panics, since a leaf node has no child slots to
// replace. Node types with children override this method.
func (b *Base) SetChild(i int, n Node) {
	panic("SetChild called on a leaf node with no children")
}

// DeclaredSymbolName is the default: this node declares nothing.
func (b *Base) DeclaredSymbolName() (string, bool) { return "", false }

// ReferencedSymbolName is the default: this node references nothing.
func (b *Base) ReferencedSymbolName() (string, bool) { return "", false }

// GetScope is the default: this node owns no scope.
func (b *Base) GetScope() (*Scope, bool) { return nil, false }

// ResolveSymbol is the default: a no-op, for nodes that never reference a
// symbol.
func (b *Base) ResolveSymbol(target Node) {}

// ResolvedSymbol is the default: never resolved.
func (b *Base) ResolvedSymbol() (Node, bool) { return nil, false }
