package ast

import (
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

// Statement is implemented by every statement node in the statement node set
// variant.
type Statement interface {
	tree.Node
	isStatement()
}

type statementBase struct {
	tree.Base
}

func (s *statementBase) isStatement() {}

var (
	kindStatementBasic       = tree.NewKind("statement_basic")
	kindStatementValue       = tree.NewKind("statement_value")
	kindStatementDeclaration = tree.NewKind("statement_declaration")
	kindStatementBlock       = tree.NewKind("statement_block")
	kindStatementIf          = tree.NewKind("statement_if")
	kindStatementWhile       = tree.NewKind("statement_while")
	kindStatementReturn      = tree.NewKind("statement_return")
)

// BasicStatementKind enumerates the no-operand statement kinds.
type BasicStatementKind int

const (
	BasicStatementContinue BasicStatementKind = iota
	BasicStatementBreak
	BasicStatementReturnVoid
)

func (k BasicStatementKind) String() string {
	switch k {
	case BasicStatementContinue:
		return "continue"
	case BasicStatementBreak:
		return "break"
	case BasicStatementReturnVoid:
		return "return-void"
	default:
		return "<unknown basic statement>"
	}
}

// StatementBasic is a `continue;`, `break;`, or bare `return;` statement.
type StatementBasic struct {
	statementBase
	BasicKind BasicStatementKind
}

// NewStatementBasic constructs a StatementBasic.
func NewStatementBasic(rng source.Range, kind BasicStatementKind) *StatementBasic {
	n := &StatementBasic{BasicKind: kind}
	n.NodeKind = kindStatementBasic
	n.NodeRange = rng
	return n
}

func (n *StatementBasic) Clone() tree.Node {
	return NewStatementBasic(n.NodeRange, n.BasicKind)
}

func (n *StatementBasic) Compare(other tree.Node) bool {
	o, ok := other.(*StatementBasic)
	return ok && o.BasicKind == n.BasicKind
}

func (n *StatementBasic) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.Field("kind", n.BasicKind.String())
}

// StatementValue evaluates a value for its side effects and discards the
// result, e.g. a bare call expression statement.
type StatementValue struct {
	statementBase
	Inner Value
}

// NewStatementValue constructs a StatementValue.
func NewStatementValue(rng source.Range, inner Value) *StatementValue {
	n := &StatementValue{Inner: inner}
	n.NodeKind = kindStatementValue
	n.NodeRange = rng
	return n
}

func (n *StatementValue) Children() []tree.Node {
	return []tree.Node{valueAsNode(n.Inner)}
}

func (n *StatementValue) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.Inner = c.(Value)
}

func (n *StatementValue) Clone() tree.Node {
	var inner Value
	if n.Inner != nil {
		inner = n.Inner.Clone().(Value)
	}
	return NewStatementValue(n.NodeRange, inner)
}

func (n *StatementValue) Compare(other tree.Node) bool {
	o, ok := other.(*StatementValue)
	return ok && compareValueNodes(n.Inner, o.Inner)
}

func (n *StatementValue) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeField("inner", valueAsNode(n.Inner))
}

// StatementDeclaration wraps a local Variable or TypeAlias declaration
// appearing inside a block.
type StatementDeclaration struct {
	statementBase
	Inner Declaration
}

// NewStatementDeclaration constructs a StatementDeclaration.
func NewStatementDeclaration(rng source.Range, inner Declaration) *StatementDeclaration {
	n := &StatementDeclaration{Inner: inner}
	n.NodeKind = kindStatementDeclaration
	n.NodeRange = rng
	return n
}

func (n *StatementDeclaration) Children() []tree.Node {
	return []tree.Node{declAsNode(n.Inner)}
}

func (n *StatementDeclaration) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.Inner = c.(Declaration)
}

func (n *StatementDeclaration) Clone() tree.Node {
	var inner Declaration
	if n.Inner != nil {
		inner = n.Inner.Clone().(Declaration)
	}
	return NewStatementDeclaration(n.NodeRange, inner)
}

func (n *StatementDeclaration) Compare(other tree.Node) bool {
	o, ok := other.(*StatementDeclaration)
	return ok && compareDeclNodes(n.Inner, o.Inner)
}

func (n *StatementDeclaration) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeField("inner", declAsNode(n.Inner))
}

// StatementBlock is an ordered, braces-delimited sequence of statements. It
// owns an ordered scope (declare-before-use, no forward references).
type StatementBlock struct {
	statementBase
	Statements []Statement
	scope      *tree.Scope
}

// NewStatementBlock constructs a StatementBlock with a fresh ordered scope.
// allowShadowingParent controls whether a local may shadow an outer-scope
// name. The parser passes false for every block, function bodies included,
// so a local may not reuse a parameter's or a global's name; the scope that
// does allow shadowing outer names is the Function node's own parameter
// scope (see NewFunction).
func NewStatementBlock(rng source.Range, statements []Statement, allowShadowingParent bool) *StatementBlock {
	n := &StatementBlock{
		Statements: statements,
		scope:      tree.NewScope(false, false, allowShadowingParent),
	}
	n.NodeKind = kindStatementBlock
	n.NodeRange = rng
	return n
}

func (n *StatementBlock) Children() []tree.Node {
	out := make([]tree.Node, len(n.Statements))
	for i, s := range n.Statements {
		out[i] = s
	}
	return out
}

func (n *StatementBlock) SetChild(i int, c tree.Node) {
	n.Statements[i] = c.(Statement)
}

func (n *StatementBlock) GetScope() (*tree.Scope, bool) {
	return n.scope, true
}

func (n *StatementBlock) Clone() tree.Node {
	statements := make([]Statement, len(n.Statements))
	for i, s := range n.Statements {
		statements[i] = s.Clone().(Statement)
	}
	return NewStatementBlock(n.NodeRange, statements, n.scope.AllowShadowingParent)
}

func (n *StatementBlock) Compare(other tree.Node) bool {
	o, ok := other.(*StatementBlock)
	if !ok || len(o.Statements) != len(n.Statements) {
		return false
	}
	for i := range n.Statements {
		if !n.Statements[i].Compare(o.Statements[i]) {
			return false
		}
	}
	return true
}

func (n *StatementBlock) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeListField("statements", n.Children())
}

// StatementIf is `if cond { then } [else { else }]`. Else is nil when absent.
type StatementIf struct {
	statementBase
	Condition Value
	Then      *StatementBlock
	Else      *StatementBlock
}

// NewStatementIf constructs a StatementIf.
func NewStatementIf(rng source.Range, condition Value, then, els *StatementBlock) *StatementIf {
	n := &StatementIf{Condition: condition, Then: then, Else: els}
	n.NodeKind = kindStatementIf
	n.NodeRange = rng
	return n
}

func (n *StatementIf) Children() []tree.Node {
	out := []tree.Node{valueAsNode(n.Condition), n.Then}
	if n.Else != nil {
		out = append(out, n.Else)
	}
	return out
}

func (n *StatementIf) SetChild(i int, c tree.Node) {
	switch i {
	case 0:
		n.Condition = c.(Value)
	case 1:
		n.Then = c.(*StatementBlock)
	case 2:
		n.Else = c.(*StatementBlock)
	default:
		core_assertChildIndex(i, 2)
	}
}

func (n *StatementIf) Clone() tree.Node {
	var condition Value
	if n.Condition != nil {
		condition = n.Condition.Clone().(Value)
	}
	then := n.Then.Clone().(*StatementBlock)
	var els *StatementBlock
	if n.Else != nil {
		els = n.Else.Clone().(*StatementBlock)
	}
	return NewStatementIf(n.NodeRange, condition, then, els)
}

func (n *StatementIf) Compare(other tree.Node) bool {
	o, ok := other.(*StatementIf)
	if !ok || !compareValueNodes(n.Condition, o.Condition) || !n.Then.Compare(o.Then) {
		return false
	}
	if (n.Else == nil) != (o.Else == nil) {
		return false
	}
	if n.Else != nil && !n.Else.Compare(o.Else) {
		return false
	}
	return true
}

func (n *StatementIf) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeField("condition", valueAsNode(n.Condition))
	f.NodeField("then", n.Then)
	if n.Else != nil {
		f.NodeField("else", n.Else)
	} else {
		f.NodeField("else", nil)
	}
}

// StatementWhile is `while cond { body }`.
type StatementWhile struct {
	statementBase
	Condition Value
	Body      *StatementBlock
}

// NewStatementWhile constructs a StatementWhile.
func NewStatementWhile(rng source.Range, condition Value, body *StatementBlock) *StatementWhile {
	n := &StatementWhile{Condition: condition, Body: body}
	n.NodeKind = kindStatementWhile
	n.NodeRange = rng
	return n
}

func (n *StatementWhile) Children() []tree.Node {
	return []tree.Node{valueAsNode(n.Condition), n.Body}
}

func (n *StatementWhile) SetChild(i int, c tree.Node) {
	switch i {
	case 0:
		n.Condition = c.(Value)
	case 1:
		n.Body = c.(*StatementBlock)
	default:
		core_assertChildIndex(i, 1)
	}
}

func (n *StatementWhile) Clone() tree.Node {
	var condition Value
	if n.Condition != nil {
		condition = n.Condition.Clone().(Value)
	}
	return NewStatementWhile(n.NodeRange, condition, n.Body.Clone().(*StatementBlock))
}

func (n *StatementWhile) Compare(other tree.Node) bool {
	o, ok := other.(*StatementWhile)
	return ok && compareValueNodes(n.Condition, o.Condition) && n.Body.Compare(o.Body)
}

func (n *StatementWhile) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeField("condition", valueAsNode(n.Condition))
	f.NodeField("body", n.Body)
}

// StatementReturn is `return value;`.
type StatementReturn struct {
	statementBase
	Inner Value
}

// NewStatementReturn constructs a StatementReturn.
func NewStatementReturn(rng source.Range, inner Value) *StatementReturn {
	n := &StatementReturn{Inner: inner}
	n.NodeKind = kindStatementReturn
	n.NodeRange = rng
	return n
}

func (n *StatementReturn) Children() []tree.Node {
	return []tree.Node{valueAsNode(n.Inner)}
}

func (n *StatementReturn) SetChild(i int, c tree.Node) {
	core_assertChildIndex(i, 0)
	n.Inner = c.(Value)
}

func (n *StatementReturn) Clone() tree.Node {
	var inner Value
	if n.Inner != nil {
		inner = n.Inner.Clone().(Value)
	}
	return NewStatementReturn(n.NodeRange, inner)
}

func (n *StatementReturn) Compare(other tree.Node) bool {
	o, ok := other.(*StatementReturn)
	return ok && compareValueNodes(n.Inner, o.Inner)
}

func (n *StatementReturn) FormatDebug(f *tree.DebugFormatter) {
	f.NodeLabel(n.NodeKind)
	f.NodeField("inner", valueAsNode(n.Inner))
}
