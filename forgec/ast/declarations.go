package ast

import (
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

// Declaration is implemented by every declaration node in the declaration node set
// variant.
type Declaration interface {
	tree.Node
	isDeclaration()
}

type declarationBase struct {
	tree.Base
}

func (d *declarationBase) isDeclaration() {}

var (
	kindVariable       = tree.NewKind("declaration_variable")
	kindFunction       = tree.NewKind("declaration_function")
	kindTypeAlias      = tree.NewKind("declaration_type_alias")
	kindStructuredType = tree.NewKind("declaration_structured_type")
	kindNamespace      = tree.NewKind("declaration_namespace")
)

// Variable is both a top-level `let`/`const` declaration, a function
// parameter, and a structured-type field -- the three are distinguished by
// where the node sits in the tree, not by a separate node kind.
type Variable struct {
	declarationBase
	Name        string
	VarType     Type
	Initializer Value

	// DeclaredConst is true for a `const` declaration and false for `let`,
	// parameters, and struct fields. forgec/sema.IsAssignable treats every
	// Variable without it as assignable, whatever its position in the
	// tree. It is independent of VarType.IsConst(), which qualifies the
	// type rather than the binding.
	DeclaredConst bool
}

// NewVariable constructs a Variable. initializer may be nil (parameters and
// struct fields never have one; locals/globals may omit one only when
// VarType is non-nil).
func NewVariable(rng source.Range, name string, varType Type, initializer Value) *Variable {
	n := &Variable{Name: name, VarType: varType, Initializer: initializer}
	n.NodeKind = kindVariable
	n.NodeRange = rng
	return n
}

func (n *Variable) DeclaredSymbolName() (string, bool) { return n.Name, true }

func (n *Variable) Children() []tree.Node {
	out := []tree.Node{asNode(n.VarType)}
	if n.Initializer != nil {
		out = append(out, n.Initializer)
	}
	return out
}

func (n *Variable) SetChild(i int, c tree.Node) {
	switch i {
	case 0:
		n.VarType = c.(Type)
	case 1:
		n.Initializer = c.(Value)
	default:
		core_assertChildIndex(i, 1)
	}
}

func (n *Variable) Clone() tree.Node {
	var varType Type
	if n.VarType != nil {
		varType = n.VarType.Clone().(Type)
	}
	var initializer Value
	if n.Initializer != nil {
		initializer = n.Initializer.Clone().(Value)
	}
	clone := NewVariable(n.NodeRange, n.Name, varType, initializer)
	clone.DeclaredConst = n.DeclaredConst
	return clone
}

func (n *Variable) Compare(other tree.Node) bool {
	o, ok := other.(*Variable)
	return ok && o.Name == n.Name && o.DeclaredConst == n.DeclaredConst &&
		compareTypeNodes(n.VarType, o.VarType) && compareValueNodes(n.Initializer, o.Initializer)
}

func (n *Variable) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.Name)
	f.Field("declared_const", n.DeclaredConst)
	f.NodeField("type", asNode(n.VarType))
	f.NodeField("initializer", valueAsNode(n.Initializer))
}

// Function is a top-level or namespace-member function declaration. Body is
// nil for an extern/forward declaration (the non-goals around separate compilation exclude linking
// against separately compiled declarations, but the field still exists for
// the JIT's entry-point lookup path, which needs a defined body).
type Function struct {
	declarationBase
	Name       string
	Params     []*Variable
	ReturnType Type
	Body       *StatementBlock
	scope      *tree.Scope
}

// NewFunction constructs a Function. Its parameter/body scope allows
// shadowing an outer-scope name (a parameter may reuse a global's name) but
// not shadowing within itself (two parameters may not share a name).
func NewFunction(rng source.Range, name string, params []*Variable, returnType Type, body *StatementBlock) *Function {
	n := &Function{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		scope:      tree.NewScope(false, false, true),
	}
	n.NodeKind = kindFunction
	n.NodeRange = rng
	return n
}

func (n *Function) DeclaredSymbolName() (string, bool) { return n.Name, true }

func (n *Function) GetScope() (*tree.Scope, bool) { return n.scope, true }

func (n *Function) Children() []tree.Node {
	out := make([]tree.Node, 0, len(n.Params)+2)
	for _, p := range n.Params {
		out = append(out, p)
	}
	out = append(out, asNode(n.ReturnType))
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

func (n *Function) SetChild(i int, c tree.Node) {
	if i < len(n.Params) {
		n.Params[i] = c.(*Variable)
		return
	}
	i -= len(n.Params)
	switch i {
	case 0:
		n.ReturnType = c.(Type)
	case 1:
		n.Body = c.(*StatementBlock)
	default:
		core_assertChildIndex(i, 1)
	}
}

func (n *Function) Clone() tree.Node {
	params := make([]*Variable, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Clone().(*Variable)
	}
	var returnType Type
	if n.ReturnType != nil {
		returnType = n.ReturnType.Clone().(Type)
	}
	var body *StatementBlock
	if n.Body != nil {
		body = n.Body.Clone().(*StatementBlock)
	}
	return NewFunction(n.NodeRange, n.Name, params, returnType, body)
}

func (n *Function) Compare(other tree.Node) bool {
	o, ok := other.(*Function)
	if !ok || o.Name != n.Name || len(o.Params) != len(n.Params) {
		return false
	}
	for i := range n.Params {
		if !n.Params[i].Compare(o.Params[i]) {
			return false
		}
	}
	if !compareTypeNodes(n.ReturnType, o.ReturnType) {
		return false
	}
	if (n.Body == nil) != (o.Body == nil) {
		return false
	}
	return n.Body == nil || n.Body.Compare(o.Body)
}

func (n *Function) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.Name)
	params := make([]tree.Node, len(n.Params))
	for i, p := range n.Params {
		params[i] = p
	}
	f.NodeListField("params", params)
	f.NodeField("return_type", asNode(n.ReturnType))
	if n.Body != nil {
		f.NodeField("body", n.Body)
	} else {
		f.NodeField("body", nil)
	}
}

// TypeAlias is `type Name = Aliased;`. Explicit marks a "distinct" alias
// that forms its own nominal type: converting to or from Aliased then
// requires an `as` cast rather than being freely interchangeable (see
// typesys.GetCastingMode). The grammar forgec parses today only produces
// transparent aliases (Explicit == false); the field exists so the
// distinct form can be added later without touching typesys or codegen.
type TypeAlias struct {
	declarationBase
	Name     string
	Aliased  Type
	Explicit bool
}

// NewTypeAlias constructs a transparent TypeAlias.
func NewTypeAlias(rng source.Range, name string, aliased Type) *TypeAlias {
	n := &TypeAlias{Name: name, Aliased: aliased}
	n.NodeKind = kindTypeAlias
	n.NodeRange = rng
	return n
}

// NewDistinctTypeAlias constructs a TypeAlias with Explicit set, requiring
// an `as` cast to convert to or from its aliased type.
func NewDistinctTypeAlias(rng source.Range, name string, aliased Type) *TypeAlias {
	n := NewTypeAlias(rng, name, aliased)
	n.Explicit = true
	return n
}

func (n *TypeAlias) DeclaredSymbolName() (string, bool) { return n.Name, true }

func (n *TypeAlias) Children() []tree.Node {
	return []tree.Node{asNode(n.Aliased)}
}

func (n *TypeAlias) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.Aliased = c.(Type)
}

func (n *TypeAlias) Clone() tree.Node {
	var aliased Type
	if n.Aliased != nil {
		aliased = n.Aliased.Clone().(Type)
	}
	clone := NewTypeAlias(n.NodeRange, n.Name, aliased)
	clone.Explicit = n.Explicit
	return clone
}

func (n *TypeAlias) Compare(other tree.Node) bool {
	o, ok := other.(*TypeAlias)
	return ok && o.Name == n.Name && o.Explicit == n.Explicit && compareTypeNodes(n.Aliased, o.Aliased)
}

func (n *TypeAlias) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.Name)
	f.Field("explicit", n.Explicit)
	f.NodeField("aliased", asNode(n.Aliased))
}

// StructuredType is a `struct Name { fields... }` declaration. Its field
// layout is a TypeStructured so that both a named declaration and an
// anonymous struct-typed value share the same field-resolution logic in
// forgec/codegen.
type StructuredType struct {
	declarationBase
	Name   string
	Fields *TypeStructured
}

// NewStructuredType constructs a StructuredType.
func NewStructuredType(rng source.Range, name string, fields *TypeStructured) *StructuredType {
	n := &StructuredType{Name: name, Fields: fields}
	n.NodeKind = kindStructuredType
	n.NodeRange = rng
	return n
}

func (n *StructuredType) DeclaredSymbolName() (string, bool) { return n.Name, true }

func (n *StructuredType) Children() []tree.Node {
	return []tree.Node{n.Fields}
}

func (n *StructuredType) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.Fields = c.(*TypeStructured)
}

func (n *StructuredType) Clone() tree.Node {
	return NewStructuredType(n.NodeRange, n.Name, n.Fields.Clone().(*TypeStructured))
}

func (n *StructuredType) Compare(other tree.Node) bool {
	o, ok := other.(*StructuredType)
	return ok && o.Name == n.Name && n.Fields.Compare(o.Fields)
}

func (n *StructuredType) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.Name)
	f.NodeField("fields", n.Fields)
}

// Namespace groups declarations under a name and owns an unordered scope:
// members may reference each other regardless of declaration order,
// unlike a block's ordered scope.
type Namespace struct {
	declarationBase
	Name    string
	Members []Declaration
	scope   *tree.Scope
}

// NewNamespace constructs a Namespace.
func NewNamespace(rng source.Range, name string, members []Declaration) *Namespace {
	n := &Namespace{
		Name:    name,
		Members: members,
		scope:   tree.NewScope(true, false, false),
	}
	n.NodeKind = kindNamespace
	n.NodeRange = rng
	return n
}

func (n *Namespace) DeclaredSymbolName() (string, bool) { return n.Name, true }

func (n *Namespace) GetScope() (*tree.Scope, bool) { return n.scope, true }

func (n *Namespace) Children() []tree.Node {
	out := make([]tree.Node, len(n.Members))
	for i, m := range n.Members {
		out[i] = m
	}
	return out
}

func (n *Namespace) SetChild(i int, c tree.Node) {
	n.Members[i] = c.(Declaration)
}

func (n *Namespace) Clone() tree.Node {
	members := make([]Declaration, len(n.Members))
	for i, m := range n.Members {
		members[i] = m.Clone().(Declaration)
	}
	return NewNamespace(n.NodeRange, n.Name, members)
}

func (n *Namespace) Compare(other tree.Node) bool {
	o, ok := other.(*Namespace)
	if !ok || o.Name != n.Name || len(o.Members) != len(n.Members) {
		return false
	}
	for i := range n.Members {
		if !compareDeclNodes(n.Members[i], o.Members[i]) {
			return false
		}
	}
	return true
}

func (n *Namespace) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.Name)
	f.NodeListField("members", n.Children())
}

func compareDeclNodes(a, b Declaration) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Compare(b)
}

func declAsNode(d Declaration) tree.Node {
	if d == nil {
		return nil
	}
	return d
}
