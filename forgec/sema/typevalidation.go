package sema

import (
	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/pass"
	"github.com/sophie-lund/forge/langtools/tree"
)

// TypeValidationHandler checks constraints that depend on a node's fully
// resolved type and, for some checks, its enclosing function: branch and
// loop conditions must be bool, an explicit cast must not be illegal, a
// `return value;` may not appear in a void function, and a bare `return;`
// may not appear in a non-void one. Whether a returned value converts to
// the declared return type is checked by TypeResolutionHandler's coercion,
// not here. It runs after TypeResolutionHandler, once every node's resolved
// type is final.
type TypeValidationHandler struct {
	messages *messaging.Context
}

// NewTypeValidationHandler returns a handler emitting into messages.
func NewTypeValidationHandler(messages *messaging.Context) *TypeValidationHandler {
	return &TypeValidationHandler{messages: messages}
}

var _ pass.Handler = (*TypeValidationHandler)(nil)

func (h *TypeValidationHandler) OnEnter(node tree.Node, stack []tree.Node) pass.Result {
	return pass.ContinueResult()
}

func (h *TypeValidationHandler) OnLeave(node tree.Node, stack []tree.Node) pass.Result {
	switch n := node.(type) {
	case *ast.StatementIf:
		h.checkCondition(n.Condition)

	case *ast.StatementWhile:
		h.checkCondition(n.Condition)

	case *ast.StatementReturn:
		h.checkReturn(n, stack)

	case *ast.StatementBasic:
		if n.BasicKind == ast.BasicStatementReturnVoid {
			h.checkReturnVoid(n, stack)
		}

	case *ast.ValueCast:
		if from := n.Operand.ValueType(); from != nil && typesys.GetCastingMode(from, n.TargetType) == typesys.CastingIllegal {
			h.messages.Emit(messaging.NewWithCode(
				n.Range(), messaging.SeverityError, "illegal-cast",
				"no conversion exists between these types",
			))
		}
	}

	return pass.ContinueResult()
}

func (h *TypeValidationHandler) checkCondition(condition ast.Value) {
	condType := condition.ValueType()
	if condType == nil {
		return
	}
	if !typesys.IsBool(condType) {
		h.messages.Emit(messaging.NewWithCode(
			condition.Range(), messaging.SeverityError, "condition-not-bool",
			"condition must be of type bool",
		))
	}
}

func enclosingFunction(stack []tree.Node) *ast.Function {
	for i := len(stack) - 1; i >= 0; i-- {
		if fn, ok := stack[i].(*ast.Function); ok {
			return fn
		}
	}
	return nil
}

func (h *TypeValidationHandler) checkReturn(n *ast.StatementReturn, stack []tree.Node) {
	fn := enclosingFunction(stack)
	if fn == nil {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "return-outside-function",
			"return statement outside of any function",
		))
		return
	}

	if fn.ReturnType == nil {
		return
	}

	if typesys.IsVoid(fn.ReturnType) {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "return-value-in-void-function",
			"cannot return a value from a function with no return type",
		))
		return
	}

	// A mismatched return value's cast legality was already checked, and any
	// diagnostic already emitted, by TypeResolutionHandler when it tried to
	// coerce n.Inner to fn.ReturnType.
}

func (h *TypeValidationHandler) checkReturnVoid(n *ast.StatementBasic, stack []tree.Node) {
	fn := enclosingFunction(stack)
	if fn == nil {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "return-outside-function",
			"return statement outside of any function",
		))
		return
	}

	if fn.ReturnType != nil && !typesys.IsVoid(fn.ReturnType) {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "type-mismatch",
			"function with a non-void return type must return a value",
		))
	}
}
