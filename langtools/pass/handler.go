// Package pass implements the pass manager: an ordered
// list of handlers composed into a single tree traversal, with status
// merging and node-replacement support.
package pass

import "github.com/sophie-lund/forge/langtools/tree"

// Status is a handler's verdict about how the manager should continue after
// visiting a node.
type Status int

const (
	// Continue means descend into (or continue past) this node normally.
	Continue Status = iota

	// DoNotTraverseChildren means skip this node's children, but continue
	// the traversal elsewhere.
	DoNotTraverseChildren

	// Halt means stop the entire traversal immediately.
	Halt
)

// strongestStatus returns whichever of a and b ranks higher in
// Halt > DoNotTraverseChildren > Continue.
func strongestStatus(a, b Status) Status {
	if a > b {
		return a
	}
	return b
}

// Result is what a Handler returns from OnEnter/OnLeave: a status plus an
// optional replacement node. When Replacement is non-nil, the manager
// substitutes it for the current node in the parent's child slot before
// continuing, and subsequent handlers at this node see the replacement
// rather than the original.
type Result struct {
	Status      Status
	Replacement tree.Node
}

// ContinueResult is the zero-value Result: continue, no replacement.
func ContinueResult() Result { return Result{Status: Continue} }

// ReplaceWith returns a Result that substitutes replacement and otherwise
// continues normally.
func ReplaceWith(replacement tree.Node) Result {
	return Result{Status: Continue, Replacement: replacement}
}

// Handler is a single unit of work run at every node during a Pass. OnEnter runs before a node's children are visited; OnLeave runs
// after. stack is a read-only view of ancestor nodes from root to immediate
// parent.
type Handler interface {
	OnEnter(node tree.Node, stack []tree.Node) Result
	OnLeave(node tree.Node, stack []tree.Node) Result
}

// HandlerFuncs adapts two plain functions to the Handler interface. A
// handler that only cares about one of OnEnter/OnLeave can leave the other
// nil; a nil func behaves as ContinueResult.
type HandlerFuncs struct {
	Enter func(node tree.Node, stack []tree.Node) Result
	Leave func(node tree.Node, stack []tree.Node) Result
}

// OnEnter implements Handler.
func (h HandlerFuncs) OnEnter(node tree.Node, stack []tree.Node) Result {
	if h.Enter == nil {
		return ContinueResult()
	}
	return h.Enter(node, stack)
}

// OnLeave implements Handler.
func (h HandlerFuncs) OnLeave(node tree.Node, stack []tree.Node) Result {
	if h.Leave == nil {
		return ContinueResult()
	}
	return h.Leave(node, stack)
}
