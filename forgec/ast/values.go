package ast

import (
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

// Value is implemented by every expression node in the value-node set.
type Value interface {
	tree.Node
	isValue()

	// ValueType returns the type resolved for this value by forgec/sema's
	// type-resolution pass, or nil before that pass has run.
	ValueType() Type

	// SetValueType stores the type resolved for this value. Called only by
	// forgec/sema.
	SetValueType(t Type)
}

// valueBase is embedded by every concrete Value node.
type valueBase struct {
	tree.Base
	ResolvedType Type
}

func (v *valueBase) isValue() {}

func (v *valueBase) ValueType() Type { return v.ResolvedType }

func (v *valueBase) SetValueType(t Type) { v.ResolvedType = t }

var (
	kindValueLiteralBool   = tree.NewKind("value_literal_bool")
	kindValueLiteralNumber = tree.NewKind("value_literal_number")
	kindValueSymbol        = tree.NewKind("value_symbol")
	kindValueFieldName     = tree.NewKind("value_field_name")
	kindValueUnary         = tree.NewKind("value_unary")
	kindValueBinary        = tree.NewKind("value_binary")
	kindValueCall          = tree.NewKind("value_call")
	kindValueCast          = tree.NewKind("value_cast")
)

// ValueFieldName is the right-hand operand of a BinaryMemberAccess: a bare
// field name that forgec/sema's type-resolution pass looks up against the
// left operand's resolved structured type, rather than against the active
// lexical scope chain. It deliberately does not implement
// ReferencedSymbolName, so the generic symbol-resolution pass in
// langtools/scope leaves it alone.
type ValueFieldName struct {
	valueBase
	Name string
}

// NewValueFieldName constructs a ValueFieldName.
func NewValueFieldName(rng source.Range, name string) *ValueFieldName {
	n := &ValueFieldName{Name: name}
	n.NodeKind = kindValueFieldName
	n.NodeRange = rng
	return n
}

func (n *ValueFieldName) Clone() tree.Node {
	return NewValueFieldName(n.NodeRange, n.Name)
}

func (n *ValueFieldName) Compare(other tree.Node) bool {
	o, ok := other.(*ValueFieldName)
	return ok && o.Name == n.Name
}

func (n *ValueFieldName) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.Name)
}

// ValueLiteralBool is a `true`/`false` literal.
type ValueLiteralBool struct {
	valueBase
	Value bool
}

// NewValueLiteralBool constructs a ValueLiteralBool.
func NewValueLiteralBool(rng source.Range, value bool) *ValueLiteralBool {
	n := &ValueLiteralBool{Value: value}
	n.NodeKind = kindValueLiteralBool
	n.NodeRange = rng
	return n
}

func (n *ValueLiteralBool) Clone() tree.Node {
	return NewValueLiteralBool(n.NodeRange, n.Value)
}

func (n *ValueLiteralBool) Compare(other tree.Node) bool {
	o, ok := other.(*ValueLiteralBool)
	return ok && o.Value == n.Value
}

func (n *ValueLiteralBool) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("value", n.Value)
}

// ValueLiteralNumber is an integer or floating-point literal, optionally
// carrying an explicit suffix type (e.g. `42i64`, `3.5f32`). When
// ExplicitType is nil, forgec/sema's type-resolution pass gives the literal
// a fixed default type: f64 if its text contains a '.', otherwise i32. The
// surrounding context does not change that default; a mismatch with the
// context is handled by ordinary cast insertion.
type ValueLiteralNumber struct {
	valueBase
	Text         string
	ExplicitType Type
}

// NewValueLiteralNumber constructs a ValueLiteralNumber.
func NewValueLiteralNumber(rng source.Range, text string, explicitType Type) *ValueLiteralNumber {
	n := &ValueLiteralNumber{Text: text, ExplicitType: explicitType}
	n.NodeKind = kindValueLiteralNumber
	n.NodeRange = rng
	return n
}

func (n *ValueLiteralNumber) Children() []tree.Node {
	if n.ExplicitType == nil {
		return nil
	}
	return []tree.Node{n.ExplicitType}
}

func (n *ValueLiteralNumber) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.ExplicitType = c.(Type)
}

func (n *ValueLiteralNumber) Clone() tree.Node {
	var explicitType Type
	if n.ExplicitType != nil {
		explicitType = n.ExplicitType.Clone().(Type)
	}
	return NewValueLiteralNumber(n.NodeRange, n.Text, explicitType)
}

func (n *ValueLiteralNumber) Compare(other tree.Node) bool {
	o, ok := other.(*ValueLiteralNumber)
	return ok && o.Text == n.Text && compareTypeNodes(n.ExplicitType, o.ExplicitType)
}

func (n *ValueLiteralNumber) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("text", n.Text)
	f.NodeField("explicit_type", asNode(n.ExplicitType))
}

// ValueSymbol is a reference to a value-bearing declaration (Variable or
// Function), resolved by symbol resolution.
type ValueSymbol struct {
	valueBase
	tree.SymbolRef
}

// NewValueSymbol constructs an unresolved ValueSymbol for name.
func NewValueSymbol(rng source.Range, name string) *ValueSymbol {
	n := &ValueSymbol{}
	n.NodeKind = kindValueSymbol
	n.NodeRange = rng
	n.SymbolRef.Name = name
	return n
}

func (n *ValueSymbol) Clone() tree.Node {
	return NewValueSymbol(n.NodeRange, n.SymbolRef.Name)
}

func (n *ValueSymbol) Compare(other tree.Node) bool {
	o, ok := other.(*ValueSymbol)
	return ok && o.SymbolRef.Name == n.SymbolRef.Name
}

func (n *ValueSymbol) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.SymbolRef.Name)
}

// ValueUnary applies a unary operator to an operand.
type ValueUnary struct {
	valueBase
	Op      UnaryOp
	Operand Value
}

// NewValueUnary constructs a ValueUnary.
func NewValueUnary(rng source.Range, op UnaryOp, operand Value) *ValueUnary {
	n := &ValueUnary{Op: op, Operand: operand}
	n.NodeKind = kindValueUnary
	n.NodeRange = rng
	return n
}

func (n *ValueUnary) Children() []tree.Node {
	return []tree.Node{valueAsNode(n.Operand)}
}

func (n *ValueUnary) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.Operand = c.(Value)
}

func (n *ValueUnary) Clone() tree.Node {
	var operand Value
	if n.Operand != nil {
		operand = n.Operand.Clone().(Value)
	}
	return NewValueUnary(n.NodeRange, n.Op, operand)
}

func (n *ValueUnary) Compare(other tree.Node) bool {
	o, ok := other.(*ValueUnary)
	return ok && o.Op == n.Op && compareValueNodes(n.Operand, o.Operand)
}

func (n *ValueUnary) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("op", n.Op.String())
	f.NodeField("operand", valueAsNode(n.Operand))
}

// ValueBinary applies a binary operator to two operands.
type ValueBinary struct {
	valueBase
	Op          BinaryOp
	Left, Right Value
}

// NewValueBinary constructs a ValueBinary.
func NewValueBinary(rng source.Range, op BinaryOp, left, right Value) *ValueBinary {
	n := &ValueBinary{Op: op, Left: left, Right: right}
	n.NodeKind = kindValueBinary
	n.NodeRange = rng
	return n
}

func (n *ValueBinary) Children() []tree.Node {
	return []tree.Node{valueAsNode(n.Left), valueAsNode(n.Right)}
}

func (n *ValueBinary) SetChild(i int, c tree.Node) {
	switch i {
	case 0:
		n.Left = c.(Value)
	case 1:
		n.Right = c.(Value)
	default:
		core_assertChildIndex(i, 1)
	}
}

func (n *ValueBinary) Clone() tree.Node {
	var left, right Value
	if n.Left != nil {
		left = n.Left.Clone().(Value)
	}
	if n.Right != nil {
		right = n.Right.Clone().(Value)
	}
	return NewValueBinary(n.NodeRange, n.Op, left, right)
}

func (n *ValueBinary) Compare(other tree.Node) bool {
	o, ok := other.(*ValueBinary)
	return ok && o.Op == n.Op && compareValueNodes(n.Left, o.Left) && compareValueNodes(n.Right, o.Right)
}

func (n *ValueBinary) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("op", n.Op.String())
	f.NodeField("left", valueAsNode(n.Left))
	f.NodeField("right", valueAsNode(n.Right))
}

// ValueCall is a function call: `callee(args...)`.
type ValueCall struct {
	valueBase
	Callee Value
	Args   []Value
}

// NewValueCall constructs a ValueCall.
func NewValueCall(rng source.Range, callee Value, args []Value) *ValueCall {
	n := &ValueCall{Callee: callee, Args: args}
	n.NodeKind = kindValueCall
	n.NodeRange = rng
	return n
}

func (n *ValueCall) Children() []tree.Node {
	out := make([]tree.Node, 0, 1+len(n.Args))
	out = append(out, valueAsNode(n.Callee))
	for _, a := range n.Args {
		out = append(out, valueAsNode(a))
	}
	return out
}

func (n *ValueCall) SetChild(i int, c tree.Node) {
	if i == 0 {
		n.Callee = c.(Value)
		return
	}
	n.Args[i-1] = c.(Value)
}

func (n *ValueCall) Clone() tree.Node {
	var callee Value
	if n.Callee != nil {
		callee = n.Callee.Clone().(Value)
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.Clone().(Value)
	}
	return NewValueCall(n.NodeRange, callee, args)
}

func (n *ValueCall) Compare(other tree.Node) bool {
	o, ok := other.(*ValueCall)
	if !ok || len(o.Args) != len(n.Args) || !compareValueNodes(n.Callee, o.Callee) {
		return false
	}
	for i := range n.Args {
		if !compareValueNodes(n.Args[i], o.Args[i]) {
			return false
		}
	}
	return true
}

func (n *ValueCall) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeField("callee", valueAsNode(n.Callee))
	children := make([]tree.Node, len(n.Args))
	for i, a := range n.Args {
		children[i] = valueAsNode(a)
	}
	f.NodeListField("args", children)
}

// ValueCast is an explicit `operand as TargetType` cast. Type validation
// rejects the cast when forgec/typesys.GetCastingMode reports it illegal;
// whether a legal cast lowers to a no-op, truncation, extension, or
// bit-reinterpretation is decided by forgec/codegen.
type ValueCast struct {
	valueBase
	Operand    Value
	TargetType Type
}

// NewValueCast constructs a ValueCast.
func NewValueCast(rng source.Range, operand Value, targetType Type) *ValueCast {
	n := &ValueCast{Operand: operand, TargetType: targetType}
	n.NodeKind = kindValueCast
	n.NodeRange = rng
	return n
}

func (n *ValueCast) Children() []tree.Node {
	return []tree.Node{valueAsNode(n.Operand), asNode(n.TargetType)}
}

func (n *ValueCast) SetChild(i int, c tree.Node) {
	switch i {
	case 0:
		n.Operand = c.(Value)
	case 1:
		n.TargetType = c.(Type)
	default:
		core_assertChildIndex(i, 1)
	}
}

func (n *ValueCast) Clone() tree.Node {
	var operand Value
	if n.Operand != nil {
		operand = n.Operand.Clone().(Value)
	}
	var targetType Type
	if n.TargetType != nil {
		targetType = n.TargetType.Clone().(Type)
	}
	return NewValueCast(n.NodeRange, operand, targetType)
}

func (n *ValueCast) Compare(other tree.Node) bool {
	o, ok := other.(*ValueCast)
	return ok && compareValueNodes(n.Operand, o.Operand) && compareTypeNodes(n.TargetType, o.TargetType)
}

func (n *ValueCast) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeField("operand", valueAsNode(n.Operand))
	f.NodeField("target_type", asNode(n.TargetType))
}

func compareValueNodes(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Compare(b)
}

func valueAsNode(v Value) tree.Node {
	if v == nil {
		return nil
	}
	return v
}
