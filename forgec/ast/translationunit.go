package ast

import (
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

var kindTranslationUnit = tree.NewKind("translation_unit")

// TranslationUnit is the root node of a single parsed source file: an
// unordered sequence of top-level declarations, mirroring Namespace's
// forward-reference semantics since two top-level functions may call
// each other regardless of textual order.
type TranslationUnit struct {
	tree.Base
	Path         string
	Declarations []Declaration
	scope        *tree.Scope
}

// NewTranslationUnit constructs a TranslationUnit for the file at path.
func NewTranslationUnit(rng source.Range, path string, declarations []Declaration) *TranslationUnit {
	n := &TranslationUnit{
		Path:         path,
		Declarations: declarations,
		scope:        tree.NewScope(true, false, false),
	}
	n.NodeKind = kindTranslationUnit
	n.NodeRange = rng
	return n
}

func (n *TranslationUnit) GetScope() (*tree.Scope, bool) { return n.scope, true }

func (n *TranslationUnit) Children() []tree.Node {
	out := make([]tree.Node, len(n.Declarations))
	for i, d := range n.Declarations {
		out[i] = d
	}
	return out
}

func (n *TranslationUnit) SetChild(i int, c tree.Node) {
	n.Declarations[i] = c.(Declaration)
}

func (n *TranslationUnit) Clone() tree.Node {
	declarations := make([]Declaration, len(n.Declarations))
	for i, d := range n.Declarations {
		declarations[i] = d.Clone().(Declaration)
	}
	return NewTranslationUnit(n.NodeRange, n.Path, declarations)
}

func (n *TranslationUnit) Compare(other tree.Node) bool {
	o, ok := other.(*TranslationUnit)
	if !ok || o.Path != n.Path || len(o.Declarations) != len(n.Declarations) {
		return false
	}
	for i := range n.Declarations {
		if !compareDeclNodes(n.Declarations[i], o.Declarations[i]) {
			return false
		}
	}
	return true
}

func (n *TranslationUnit) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("path", n.Path)
	f.NodeListField("declarations", n.Children())
}
