// Package scope implements the symbol-resolution pass handler: it maintains the active-scope stack across a single pass traversal
// and binds Symbol-referencing nodes to their declarations.
package scope

import (
	"fmt"

	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/pass"
	"github.com/sophie-lund/forge/langtools/tree"
)

// HandlerOptions carries the diagnostic codes the handler emits, so
// different front ends can keep their own code vocabularies.
type HandlerOptions struct {
	CodeUndeclared string
	CodeRedeclared string
	CodeNoScope    string
}

// DefaultOptions are the codes forgec/sema registers the handler with.
func DefaultOptions() HandlerOptions {
	return HandlerOptions{
		CodeUndeclared: "undeclared-symbol",
		CodeRedeclared: "redeclared-symbol",
		CodeNoScope:    "no-scope",
	}
}

// Handler is a pass.Handler implementing symbol resolution. A fresh Handler
// must be used per traversal: it keeps the active-scope stack as internal
// state across the OnEnter/OnLeave calls the pass manager makes for it.
type Handler struct {
	messages     *messaging.Context
	options      HandlerOptions
	activeScopes []*tree.Scope
}

// NewHandler returns a Handler that emits into messages and is ready to be
// registered on a pass.Pass.
func NewHandler(messages *messaging.Context, options HandlerOptions) *Handler {
	return &Handler{messages: messages, options: options}
}

var _ pass.Handler = (*Handler)(nil)

// OnEnter inserts declared symbols and, for scope-owning nodes, pushes a
// new active scope. The nearest enclosing scope a declared name is inserted
// into is evaluated against the active-scope stack as it stood *before*
// this node's own scope is pushed: a function both declares its own name
// and owns a body scope, and its name must be visible to callers outside
// that body scope, not only to its own parameters and statements.
func (h *Handler) OnEnter(node tree.Node, stack []tree.Node) pass.Result {
	if name, ok := node.DeclaredSymbolName(); ok {
		h.handleDeclaredSymbol(node, name)
	}

	if s, ok := node.GetScope(); ok {
		if s.Unordered {
			for _, child := range node.Children() {
				if name, ok := child.DeclaredSymbolName(); ok {
					if !s.Insert(name, child) {
						h.emitRedeclared(child, name)
					}
				}
			}
		}
		h.activeScopes = append(h.activeScopes, s)
	}

	return pass.ContinueResult()
}

// OnLeave resolves referenced symbols against the active-scope stack and pops any scope this node pushed.
func (h *Handler) OnLeave(node tree.Node, stack []tree.Node) pass.Result {
	if name, ok := node.ReferencedSymbolName(); ok {
		h.handleReferencedSymbol(node, name)
	}

	if _, ok := node.GetScope(); ok && len(h.activeScopes) > 0 {
		h.activeScopes = h.activeScopes[:len(h.activeScopes)-1]
	}

	return pass.ContinueResult()
}

func (h *Handler) handleDeclaredSymbol(node tree.Node, name string) {
	nearest := h.nearestScope()
	if nearest == nil {
		return
	}
	if nearest.Unordered {
		// Already eagerly inserted by the parent scope's unordered
		// pre-pass; inserting again would spuriously look like a
		// redeclaration.
		return
	}

	if !nearest.AllowShadowingParent && h.visibleInAncestor(name) {
		h.emitRedeclared(node, name)
		return
	}

	if !nearest.Insert(name, node) {
		h.emitRedeclared(node, name)
	}
}

// visibleInAncestor reports whether name is declared in any scope on the
// active stack other than the innermost one.
func (h *Handler) visibleInAncestor(name string) bool {
	for i := len(h.activeScopes) - 2; i >= 0; i-- {
		if _, ok := h.activeScopes[i].Get(name); ok {
			return true
		}
	}
	return false
}

func (h *Handler) handleReferencedSymbol(node tree.Node, name string) {
	if len(h.activeScopes) == 0 {
		h.messages.Emit(messaging.NewWithCode(
			node.Range(), messaging.SeverityError, h.options.CodeNoScope,
			fmt.Sprintf("no scope available to resolve %q", name),
		))
		return
	}

	for i := len(h.activeScopes) - 1; i >= 0; i-- {
		if target, ok := h.activeScopes[i].Get(name); ok {
			node.ResolveSymbol(target)
			return
		}
	}

	h.messages.Emit(messaging.NewWithCode(
		node.Range(), messaging.SeverityError, h.options.CodeUndeclared,
		fmt.Sprintf("undeclared symbol %q", name),
	))
}

func (h *Handler) emitRedeclared(node tree.Node, name string) {
	h.messages.Emit(messaging.NewWithCode(
		node.Range(), messaging.SeverityError, h.options.CodeRedeclared,
		fmt.Sprintf("redeclaration of %q", name),
	))
}

func (h *Handler) nearestScope() *tree.Scope {
	if len(h.activeScopes) == 0 {
		return nil
	}
	return h.activeScopes[len(h.activeScopes)-1]
}
