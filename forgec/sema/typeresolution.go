// Package sema implements forgec's semantic-analysis pipeline: the ordered
// symbol-resolution, type-resolution (with implicit-cast insertion),
// type-validation, and control-flow-validation passes, each a
// langtools/pass.Handler registered on its own langtools/pass.Pass.
package sema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/pass"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

// TypeResolutionHandler computes resolved_type for every Value bottom-up
// and inserts implicit Cast wrappers where an operand needs promotion. A
// fresh handler is used per traversal.
type TypeResolutionHandler struct {
	messages *messaging.Context
}

// NewTypeResolutionHandler returns a handler emitting into messages.
func NewTypeResolutionHandler(messages *messaging.Context) *TypeResolutionHandler {
	return &TypeResolutionHandler{messages: messages}
}

var _ pass.Handler = (*TypeResolutionHandler)(nil)

// OnEnter does nothing: type resolution is bottom-up.
func (h *TypeResolutionHandler) OnEnter(node tree.Node, stack []tree.Node) pass.Result {
	return pass.ContinueResult()
}

// OnLeave resolves node's type once all of its children have resolved
// theirs.
func (h *TypeResolutionHandler) OnLeave(node tree.Node, stack []tree.Node) pass.Result {
	switch n := node.(type) {
	case *ast.ValueLiteralBool:
		n.SetValueType(ast.NewTypeBasic(source.Range{}, ast.BasicBool))

	case *ast.ValueLiteralNumber:
		h.resolveLiteralNumber(n)

	case *ast.ValueSymbol:
		h.resolveSymbolValue(n)

	case *ast.ValueUnary:
		h.resolveUnary(n)

	case *ast.ValueBinary:
		h.resolveBinary(n)

	case *ast.ValueCall:
		h.resolveCall(n)

	case *ast.ValueCast:
		// An explicit cast's type is always exactly its target, regardless
		// of the operand -- legality is checked by type validation.
		n.SetValueType(n.TargetType)

	case *ast.Variable:
		h.resolveVariableDecl(n)

	case *ast.StatementReturn:
		h.resolveReturn(n, stack)
	}

	return pass.ContinueResult()
}

func (h *TypeResolutionHandler) resolveLiteralNumber(n *ast.ValueLiteralNumber) {
	if n.ExplicitType != nil {
		n.SetValueType(n.ExplicitType)
		h.checkLiteralTruncation(n)
		return
	}

	if strings.Contains(n.Text, ".") {
		n.SetValueType(ast.NewTypeWithBitWidth(source.Range{}, ast.NumericFloat, 64))
		return
	}

	n.SetValueType(ast.NewTypeWithBitWidth(source.Range{}, ast.NumericSignedInt, 32))
}

// checkLiteralTruncation warns when a literal with an explicit integer
// suffix does not fit that width, e.g. `2147483648i32`.
func (h *TypeResolutionHandler) checkLiteralTruncation(n *ast.ValueLiteralNumber) {
	bw, ok := n.ExplicitType.(*ast.TypeWithBitWidth)
	if !ok || bw.NumericKind == ast.NumericFloat {
		return
	}

	signed := bw.NumericKind == ast.NumericSignedInt
	if signed {
		value, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil || !fitsSigned(value, bw.BitWidth) {
			h.emitTruncationWarning(n)
		}
		return
	}

	value, err := strconv.ParseUint(n.Text, 10, 64)
	if err != nil || !fitsUnsigned(value, bw.BitWidth) {
		h.emitTruncationWarning(n)
	}
}

func (h *TypeResolutionHandler) emitTruncationWarning(n *ast.ValueLiteralNumber) {
	h.messages.Emit(messaging.NewWithCode(
		n.Range(), messaging.SeverityWarning, "number-literal-truncated",
		"literal does not fit its declared type and will be truncated",
	))
}

func fitsSigned(value int64, width int) bool {
	if width >= 64 {
		return true
	}
	min, max := int64(-1)<<(width-1), int64(1)<<(width-1)-1
	return value >= min && value <= max
}

func fitsUnsigned(value uint64, width int) bool {
	if width >= 64 {
		return true
	}
	return value <= uint64(1)<<width-1
}

func (h *TypeResolutionHandler) resolveSymbolValue(n *ast.ValueSymbol) {
	target, ok := n.ResolvedSymbol()
	if !ok {
		// Symbol resolution already reported this; leave the type unset so
		// later passes can tell this value never resolved.
		return
	}

	switch decl := target.(type) {
	case *ast.Variable:
		n.SetValueType(decl.VarType)
	case *ast.Function:
		argTypes := make([]ast.Type, len(decl.Params))
		for i, p := range decl.Params {
			argTypes[i] = p.VarType
		}
		n.SetValueType(ast.NewTypeFunction(source.Range{}, decl.ReturnType, argTypes))
	}
}

func (h *TypeResolutionHandler) resolveVariableDecl(n *ast.Variable) {
	if n.Initializer == nil {
		return
	}

	initType := n.Initializer.ValueType()
	if initType == nil {
		return
	}

	if n.VarType == nil {
		n.VarType = initType
		return
	}

	if casted, ok := h.coerce(n.Initializer, n.VarType); ok {
		n.Initializer = casted
	}
}

// resolveReturn inserts an implicit cast on a `return value;`'s value if
// the enclosing function's declared return type requires widening.
// Mismatches that require an explicit cast or have no conversion at all
// are reported here, by coerce; TypeValidationHandler does not check them
// again.
func (h *TypeResolutionHandler) resolveReturn(n *ast.StatementReturn, stack []tree.Node) {
	fn := enclosingFunction(stack)
	if fn == nil || fn.ReturnType == nil || n.Inner == nil {
		return
	}

	if casted, ok := h.coerce(n.Inner, fn.ReturnType); ok {
		n.Inner = casted
	}
}

func (h *TypeResolutionHandler) resolveUnary(n *ast.ValueUnary) {
	operandType := n.Operand.ValueType()
	if operandType == nil {
		return
	}

	switch n.Op {
	case ast.UnaryDeref:
		elem, ok := typesys.TryGetPointerElementType(operandType)
		if !ok {
			h.messages.Emit(messaging.NewWithCode(
				n.Range(), messaging.SeverityError, "invalid-dereference",
				"cannot dereference a non-pointer type",
			))
			return
		}
		n.SetValueType(elem)

	case ast.UnaryGetAddr:
		if !IsAssignable(n.Operand) {
			h.messages.Emit(messaging.NewWithCode(
				n.Range(), messaging.SeverityError, "invalid-address-of",
				"cannot take the address of a non-assignable value",
			))
			return
		}
		n.SetValueType(ast.NewTypeUnary(source.Range{}, ast.TypeUnaryPointer, operandType))

	case ast.UnaryBoolNot:
		if casted, ok := h.coerce(n.Operand, ast.NewTypeBasic(source.Range{}, ast.BasicBool)); ok {
			n.Operand = casted
		}
		n.SetValueType(ast.NewTypeBasic(source.Range{}, ast.BasicBool))

	case ast.UnaryBitNot, ast.UnaryPos, ast.UnaryNeg:
		n.SetValueType(operandType)
	}
}

func (h *TypeResolutionHandler) resolveBinary(n *ast.ValueBinary) {
	if n.Op == ast.BinaryMemberAccess {
		h.resolveMemberAccess(n)
		return
	}

	if baseOp, ok := ast.TryGetCompoundAssignmentBaseOperator(n.Op); ok {
		h.desugarCompoundAssignment(n, baseOp)
		return
	}

	if n.Op == ast.BinaryAssign {
		h.resolveAssignment(n)
		return
	}

	leftType, rightType := n.Left.ValueType(), n.Right.ValueType()
	if leftType == nil || rightType == nil {
		return
	}

	containing, ok := typesys.GetArithmeticContainingType(leftType, rightType)
	if !ok {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "no-containing-type",
			"operands have no common arithmetic type",
		))
		return
	}

	if casted, ok := h.coerce(n.Left, containing); ok {
		n.Left = casted
	}
	if casted, ok := h.coerce(n.Right, containing); ok {
		n.Right = casted
	}

	if n.Op.IsComparison() {
		n.SetValueType(ast.NewTypeBasic(source.Range{}, ast.BasicBool))
		return
	}

	n.SetValueType(containing)
}

func (h *TypeResolutionHandler) resolveMemberAccess(n *ast.ValueBinary) {
	field, ok := n.Right.(*ast.ValueFieldName)
	if !ok {
		return
	}

	leftType := n.Left.ValueType()
	structured := resolveStructuredType(leftType)
	if structured == nil {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "not-a-struct",
			"member access on a non-structured type",
		))
		return
	}

	for _, member := range structured.Members {
		if member.Name == field.Name {
			field.SetValueType(member.VarType)
			n.SetValueType(member.VarType)
			return
		}
	}

	h.messages.Emit(messaging.NewWithCode(
		field.Range(), messaging.SeverityError, "unknown-member",
		fmt.Sprintf("no member named %q", field.Name),
	))
}

// resolveStructuredType unwraps a (possibly symbol-referenced) type down to
// its underlying TypeStructured, or nil if it is not a structured type.
func resolveStructuredType(t ast.Type) *ast.TypeStructured {
	switch v := t.(type) {
	case *ast.TypeStructured:
		return v
	case *ast.TypeSymbol:
		target, ok := v.ResolvedSymbol()
		if !ok {
			return nil
		}
		switch decl := target.(type) {
		case *ast.StructuredType:
			return decl.Fields
		case *ast.TypeAlias:
			return resolveStructuredType(decl.Aliased)
		}
	}
	return nil
}

func (h *TypeResolutionHandler) resolveAssignment(n *ast.ValueBinary) {
	if !IsAssignable(n.Left) {
		h.messages.Emit(messaging.NewWithCode(
			n.Left.Range(), messaging.SeverityError, "non-assignable-target",
			"left-hand side of an assignment must be assignable",
		))
		return
	}

	leftType := n.Left.ValueType()
	if leftType == nil {
		return
	}

	if casted, ok := h.coerce(n.Right, leftType); ok {
		n.Right = casted
	}

	n.SetValueType(leftType)
}

// desugarCompoundAssignment rewrites `x op= y` into `x = x op y`. The
// inner read of x reuses x's already-resolved symbol binding rather than
// re-running symbol resolution, since this pass runs strictly after it.
func (h *TypeResolutionHandler) desugarCompoundAssignment(n *ast.ValueBinary, baseOp ast.BinaryOp) {
	if !IsAssignable(n.Left) {
		h.messages.Emit(messaging.NewWithCode(
			n.Left.Range(), messaging.SeverityError, "non-assignable-target",
			"left-hand side of a compound assignment must be assignable",
		))
		return
	}

	innerRead := cloneResolvedValue(n.Left)
	combined := ast.NewValueBinary(n.Range(), baseOp, innerRead, n.Right)

	n.Op = ast.BinaryAssign
	n.Right = combined

	h.resolveBinary(combined)
	h.resolveAssignment(n)
}

func (h *TypeResolutionHandler) resolveCall(n *ast.ValueCall) {
	calleeType := n.Callee.ValueType()
	fn, ok := calleeType.(*ast.TypeFunction)
	if !ok {
		if calleeType != nil {
			h.messages.Emit(messaging.NewWithCode(
				n.Range(), messaging.SeverityError, "not-callable",
				"callee is not a function",
			))
		}
		return
	}

	if len(n.Args) != len(fn.ArgTypes) {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "argument-count-mismatch",
			fmt.Sprintf("expected %d arguments but found %d", len(fn.ArgTypes), len(n.Args)),
		))
		return
	}

	for i, want := range fn.ArgTypes {
		if casted, ok := h.coerce(n.Args[i], want); ok {
			n.Args[i] = casted
		}
	}

	n.SetValueType(fn.ReturnType)
}

// coerce wraps value in a Cast to desired if the casting mode is implicit,
// returning the original value unchanged (ok == false) otherwise -- in
// which case it also emits a diagnostic unless the types already match.
func (h *TypeResolutionHandler) coerce(value ast.Value, desired ast.Type) (ast.Value, bool) {
	actual := value.ValueType()
	if actual == nil || desired == nil {
		return value, false
	}

	mode := typesys.GetCastingMode(actual, desired)
	switch mode {
	case typesys.CastingImplicit:
		if sameNamedType(actual, desired) {
			return value, false
		}
		cast := ast.NewValueCast(value.Range(), value, desired)
		cast.SetValueType(desired)
		return cast, true

	case typesys.CastingExplicit:
		h.messages.Emit(messaging.NewWithCode(
			value.Range(), messaging.SeverityError, "type-mismatch",
			"this conversion requires an explicit cast",
		))
		return value, false

	default:
		h.messages.Emit(messaging.NewWithCode(
			value.Range(), messaging.SeverityError, "illegal-cast",
			"no conversion exists between these types",
		))
		return value, false
	}
}

func sameNamedType(a, b ast.Type) bool {
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b) && a.Compare(b)
}

// cloneResolvedValue clones v for reuse as the inner read operand of a
// desugared compound assignment, re-propagating symbol resolution since
// Clone() on a bare Symbol node does not carry it.
func cloneResolvedValue(v ast.Value) ast.Value {
	clone := v.Clone().(ast.Value)

	if symbol, ok := v.(*ast.ValueSymbol); ok {
		if target, ok := symbol.ResolvedSymbol(); ok {
			clone.(*ast.ValueSymbol).ResolveSymbol(target)
		}
	}

	clone.SetValueType(v.ValueType())
	return clone
}
