package ast

import (
	"fmt"

	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

// Type is implemented by every type node in the type-node set. The marker
// method restricts which tree.Node values are acceptable wherever the
// catalogue expects "a type" (e.g. Variable.Type).
type Type interface {
	tree.Node
	isType()

	// IsConst reports whether this type carries a const qualifier. Const is
	// a property of every type node, not just pointers.
	IsConst() bool
}

// typeBase is embedded by every concrete Type node.
type typeBase struct {
	tree.Base
	Const bool
}

func (t *typeBase) isType()       {}
func (t *typeBase) IsConst() bool { return t.Const }

var (
	kindTypeBasic        = tree.NewKind("type_basic")
	kindTypeWithBitWidth = tree.NewKind("type_with_bit_width")
	kindTypeSymbol       = tree.NewKind("type_symbol")
	kindTypeUnary        = tree.NewKind("type_unary")
	kindTypeFunction     = tree.NewKind("type_function")
	kindTypeStructured   = tree.NewKind("type_structured")
)

// BasicKind enumerates the basic scalar kinds.
type BasicKind int

const (
	BasicBool BasicKind = iota
	BasicVoid
	BasicISize
	BasicUSize
)

func (k BasicKind) String() string {
	switch k {
	case BasicBool:
		return "bool"
	case BasicVoid:
		return "void"
	case BasicISize:
		return "isize"
	case BasicUSize:
		return "usize"
	default:
		return "<unknown basic type>"
	}
}

// TypeBasic is one of bool/void/isize/usize.
type TypeBasic struct {
	typeBase
	BasicKind BasicKind
}

// NewTypeBasic constructs a TypeBasic.
func NewTypeBasic(rng source.Range, kind BasicKind) *TypeBasic {
	n := &TypeBasic{BasicKind: kind}
	n.NodeKind = kindTypeBasic
	n.NodeRange = rng
	return n
}

func (n *TypeBasic) Clone() tree.Node {
	return NewTypeBasic(n.NodeRange, n.BasicKind)
}

func (n *TypeBasic) Compare(other tree.Node) bool {
	o, ok := other.(*TypeBasic)
	return ok && o.BasicKind == n.BasicKind && o.Const == n.Const
}

func (n *TypeBasic) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("kind", n.BasicKind)
	f.Field("const", n.Const)
}

// NumericKind enumerates the fixed-width numeric kinds.
type NumericKind int

const (
	NumericSignedInt NumericKind = iota
	NumericUnsignedInt
	NumericFloat
)

func (k NumericKind) String() string {
	switch k {
	case NumericSignedInt:
		return "signed-int"
	case NumericUnsignedInt:
		return "unsigned-int"
	case NumericFloat:
		return "float"
	default:
		return "<unknown numeric kind>"
	}
}

// TypeWithBitWidth is a fixed-width integer or floating-point type: i8..i64,
// u8..u64, f32, f64.
type TypeWithBitWidth struct {
	typeBase
	NumericKind NumericKind
	BitWidth    int
}

// NewTypeWithBitWidth constructs a TypeWithBitWidth.
func NewTypeWithBitWidth(rng source.Range, kind NumericKind, bitWidth int) *TypeWithBitWidth {
	n := &TypeWithBitWidth{NumericKind: kind, BitWidth: bitWidth}
	n.NodeKind = kindTypeWithBitWidth
	n.NodeRange = rng
	return n
}

func (n *TypeWithBitWidth) Clone() tree.Node {
	return NewTypeWithBitWidth(n.NodeRange, n.NumericKind, n.BitWidth)
}

func (n *TypeWithBitWidth) Compare(other tree.Node) bool {
	o, ok := other.(*TypeWithBitWidth)
	return ok && o.NumericKind == n.NumericKind && o.BitWidth == n.BitWidth && o.Const == n.Const
}

func (n *TypeWithBitWidth) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("kind", n.NumericKind)
	f.Field("bit_width", n.BitWidth)
	f.Field("const", n.Const)
}

// Name returns the suffix/keyword spelling, e.g. "i32", "u8", "f64".
func (n *TypeWithBitWidth) Name() string {
	switch n.NumericKind {
	case NumericSignedInt:
		return fmt.Sprintf("i%d", n.BitWidth)
	case NumericUnsignedInt:
		return fmt.Sprintf("u%d", n.BitWidth)
	case NumericFloat:
		return fmt.Sprintf("f%d", n.BitWidth)
	default:
		return "<unknown>"
	}
}

// TypeSymbol is a reference to a named type (a TypeAlias or StructuredType
// declaration) resolved by symbol resolution.
type TypeSymbol struct {
	typeBase
	tree.SymbolRef
}

// NewTypeSymbol constructs an unresolved TypeSymbol for name.
func NewTypeSymbol(rng source.Range, name string) *TypeSymbol {
	n := &TypeSymbol{}
	n.NodeKind = kindTypeSymbol
	n.NodeRange = rng
	n.SymbolRef.Name = name
	return n
}

func (n *TypeSymbol) Clone() tree.Node {
	c := NewTypeSymbol(n.NodeRange, n.SymbolRef.Name)
	c.Const = n.Const
	return c
}

func (n *TypeSymbol) Compare(other tree.Node) bool {
	o, ok := other.(*TypeSymbol)
	return ok && o.SymbolRef.Name == n.SymbolRef.Name && o.Const == n.Const
}

func (n *TypeSymbol) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("name", n.SymbolRef.Name)
	f.Field("const", n.Const)
}

// TypeUnaryOp enumerates the unary type-operator kinds -- currently just
// pointer.
type TypeUnaryOp int

const (
	TypeUnaryPointer TypeUnaryOp = iota
)

// TypeUnary is `*T` (a pointer type).
type TypeUnary struct {
	typeBase
	Op      TypeUnaryOp
	Operand Type
}

// NewTypeUnary constructs a TypeUnary.
func NewTypeUnary(rng source.Range, op TypeUnaryOp, operand Type) *TypeUnary {
	n := &TypeUnary{Op: op, Operand: operand}
	n.NodeKind = kindTypeUnary
	n.NodeRange = rng
	return n
}

func (n *TypeUnary) Children() []tree.Node {
	if n.Operand == nil {
		return nil
	}
	return []tree.Node{n.Operand}
}

func (n *TypeUnary) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.Operand = c.(Type)
}

func (n *TypeUnary) Clone() tree.Node {
	var operand Type
	if n.Operand != nil {
		operand = n.Operand.Clone().(Type)
	}
	c := NewTypeUnary(n.NodeRange, n.Op, operand)
	c.Const = n.Const
	return c
}

func (n *TypeUnary) Compare(other tree.Node) bool {
	o, ok := other.(*TypeUnary)
	if !ok || o.Op != n.Op || o.Const != n.Const {
		return false
	}
	return compareTypeNodes(n.Operand, o.Operand)
}

func (n *TypeUnary) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("op", "pointer")
	f.Field("const", n.Const)
	f.NodeField("operand", asNode(n.Operand))
}

// TypeFunction is a function type: a return type plus argument types.
type TypeFunction struct {
	typeBase
	ReturnType Type
	ArgTypes   []Type
}

// NewTypeFunction constructs a TypeFunction.
func NewTypeFunction(rng source.Range, returnType Type, argTypes []Type) *TypeFunction {
	n := &TypeFunction{ReturnType: returnType, ArgTypes: argTypes}
	n.NodeKind = kindTypeFunction
	n.NodeRange = rng
	return n
}

func (n *TypeFunction) Children() []tree.Node {
	out := make([]tree.Node, 0, 1+len(n.ArgTypes))
	out = append(out, asNode(n.ReturnType))
	for _, a := range n.ArgTypes {
		out = append(out, asNode(a))
	}
	return out
}

func (n *TypeFunction) SetChild(i int, c tree.Node) {
	if i == 0 {
		n.ReturnType = c.(Type)
		return
	}
	n.ArgTypes[i-1] = c.(Type)
}

func (n *TypeFunction) Clone() tree.Node {
	args := make([]Type, len(n.ArgTypes))
	for i, a := range n.ArgTypes {
		args[i] = a.Clone().(Type)
	}
	var ret Type
	if n.ReturnType != nil {
		ret = n.ReturnType.Clone().(Type)
	}
	c := NewTypeFunction(n.NodeRange, ret, args)
	c.Const = n.Const
	return c
}

func (n *TypeFunction) Compare(other tree.Node) bool {
	o, ok := other.(*TypeFunction)
	if !ok || len(o.ArgTypes) != len(n.ArgTypes) || o.Const != n.Const {
		return false
	}
	if !compareTypeNodes(n.ReturnType, o.ReturnType) {
		return false
	}
	for i := range n.ArgTypes {
		if !compareTypeNodes(n.ArgTypes[i], o.ArgTypes[i]) {
			return false
		}
	}
	return true
}

func (n *TypeFunction) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("const", n.Const)
	f.NodeField("return_type", asNode(n.ReturnType))
	children := make([]tree.Node, len(n.ArgTypes))
	for i, a := range n.ArgTypes {
		children[i] = asNode(a)
	}
	f.NodeListField("arg_types", children)
}

// TypeStructured is a struct type's field layout, shared between the
// StructuredType declaration and a bare struct literal type reference.
type TypeStructured struct {
	typeBase
	Members []*Variable
}

// NewTypeStructured constructs a TypeStructured.
func NewTypeStructured(rng source.Range, members []*Variable) *TypeStructured {
	n := &TypeStructured{Members: members}
	n.NodeKind = kindTypeStructured
	n.NodeRange = rng
	return n
}

func (n *TypeStructured) Children() []tree.Node {
	out := make([]tree.Node, len(n.Members))
	for i, m := range n.Members {
		out[i] = m
	}
	return out
}

func (n *TypeStructured) SetChild(i int, c tree.Node) {
	n.Members[i] = c.(*Variable)
}

func (n *TypeStructured) Clone() tree.Node {
	members := make([]*Variable, len(n.Members))
	for i, m := range n.Members {
		members[i] = m.Clone().(*Variable)
	}
	c := NewTypeStructured(n.NodeRange, members)
	c.Const = n.Const
	return c
}

func (n *TypeStructured) Compare(other tree.Node) bool {
	o, ok := other.(*TypeStructured)
	if !ok || len(o.Members) != len(n.Members) || o.Const != n.Const {
		return false
	}
	for i := range n.Members {
		if !n.Members[i].Compare(o.Members[i]) {
			return false
		}
	}
	return true
}

func (n *TypeStructured) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("const", n.Const)
	f.NodeListField("members", n.Children())
}

// compareTypeNodes compares two possibly-nil Type values.
func compareTypeNodes(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Compare(b)
}

// asNode converts a possibly-nil typed interface into a tree.Node, returning
// an untyped nil rather than a non-nil interface wrapping a nil pointer.
func asNode(t Type) tree.Node {
	if t == nil {
		return nil
	}
	return t
}

func core_assertChildIndex(i, max int) {
	if i < 0 || i > max {
		panic("child index out of range")
	}
}
