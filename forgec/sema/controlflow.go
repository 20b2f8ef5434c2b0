package sema

import (
	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/pass"
	"github.com/sophie-lund/forge/langtools/tree"
)

// ControlFlowHandler validates `continue`/`break` placement, flags dead
// code following a terminating statement, and ensures a function with a
// non-void return type terminates on every path. Unlike type resolution,
// "terminates" is computed as a pure function of a statement list rather
// than stored on the tree, since nothing downstream needs it cached.
type ControlFlowHandler struct {
	messages *messaging.Context
}

// NewControlFlowHandler returns a handler emitting into messages.
func NewControlFlowHandler(messages *messaging.Context) *ControlFlowHandler {
	return &ControlFlowHandler{messages: messages}
}

var _ pass.Handler = (*ControlFlowHandler)(nil)

func (h *ControlFlowHandler) OnEnter(node tree.Node, stack []tree.Node) pass.Result {
	switch n := node.(type) {
	case *ast.StatementBasic:
		if n.BasicKind == ast.BasicStatementContinue || n.BasicKind == ast.BasicStatementBreak {
			h.checkLoopStatement(n, stack)
		}
	}
	return pass.ContinueResult()
}

func (h *ControlFlowHandler) OnLeave(node tree.Node, stack []tree.Node) pass.Result {
	switch n := node.(type) {
	case *ast.StatementBlock:
		h.checkDeadCode(n.Statements)

	case *ast.Function:
		h.checkFunctionTerminates(n)
	}
	return pass.ContinueResult()
}

func (h *ControlFlowHandler) checkLoopStatement(n *ast.StatementBasic, stack []tree.Node) {
	for i := len(stack) - 1; i >= 0; i-- {
		if _, ok := stack[i].(*ast.StatementWhile); ok {
			return
		}
		// A continue/break does not reach through an intervening function
		// boundary to an outer loop.
		if _, ok := stack[i].(*ast.Function); ok {
			break
		}
	}

	code := "continue-outside-loop"
	if n.BasicKind == ast.BasicStatementBreak {
		code = "break-outside-loop"
	}
	h.messages.Emit(messaging.NewWithCode(
		n.Range(), messaging.SeverityError, code,
		n.BasicKind.String()+" used outside of a while loop",
	))
}

func (h *ControlFlowHandler) checkDeadCode(statements []ast.Statement) {
	for i, s := range statements {
		if i == len(statements)-1 {
			break
		}
		if TerminatesBlock(s) {
			h.messages.Emit(messaging.NewWithCode(
				statements[i+1].Range(), messaging.SeverityWarning, "dead-code",
				"statement is unreachable",
			))
			break
		}
	}
}

func (h *ControlFlowHandler) checkFunctionTerminates(n *ast.Function) {
	if n.Body == nil || n.ReturnType == nil {
		return
	}

	if typesys.IsVoid(n.ReturnType) {
		return
	}

	if !TerminatesBlock(nodeAsStatement(n.Body)) {
		h.messages.Emit(messaging.NewWithCode(
			n.Range(), messaging.SeverityError, "missing-return",
			"function with a non-void return type does not return on every path",
		))
	}
}

// nodeAsStatement wraps a StatementBlock as the Statement interface it
// already implements -- a small indirection so TerminatesBlock's signature
// can stay uniform for both a function body and any nested block.
func nodeAsStatement(b *ast.StatementBlock) ast.Statement {
	return b
}

// TerminatesBlock reports whether executing s always leaves the
// enclosing block via a return, continue, or break rather than falling
// through to the following statement.
func TerminatesBlock(s ast.Statement) bool {
	switch n := s.(type) {
	case *ast.StatementBasic:
		return true

	case *ast.StatementReturn:
		return true

	case *ast.StatementIf:
		if n.Else == nil {
			return false
		}
		return TerminatesBlockList(n.Then.Statements) && TerminatesBlockList(n.Else.Statements)

	case *ast.StatementBlock:
		return TerminatesBlockList(n.Statements)

	default:
		return false
	}
}

// TerminatesBlockList reports whether the last statement in statements
// terminates its enclosing block; an empty list never terminates.
func TerminatesBlockList(statements []ast.Statement) bool {
	if len(statements) == 0 {
		return false
	}
	return TerminatesBlock(statements[len(statements)-1])
}
