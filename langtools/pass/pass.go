package pass

import (
	"github.com/sophie-lund/forge/langtools/core"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/tree"
)

// Pass owns an ordered list of handlers and drives a single traversal of a
// syntax tree, invoking every handler's OnEnter before descending into a
// node's children and OnLeave after.
type Pass struct {
	messages *messaging.Context
	handlers []Handler
	halted   bool
}

// New returns a Pass with no handlers yet registered.
func New(messages *messaging.Context) *Pass {
	return &Pass{messages: messages}
}

// AddHandler appends a handler to the end of the registered order. Handlers
// run in registration order at every node.
func (p *Pass) AddHandler(h Handler) {
	p.handlers = append(p.handlers, h)
}

// Messages returns the shared diagnostic sink handlers should emit into.
func (p *Pass) Messages() *messaging.Context {
	return p.messages
}

// Run traverses root once and returns the (possibly replaced) root node.
// Traversal stops early if any handler ever returns Halt.
func (p *Pass) Run(root tree.Node) tree.Node {
	defer core.Tracef("pass with %d handler(s)", len(p.handlers))()

	p.halted = false
	return p.visit(root, nil)
}

func (p *Pass) visit(node tree.Node, stack []tree.Node) tree.Node {
	if node == nil || p.halted {
		return node
	}

	enter := p.runHandlers(node, stack, true)
	current := node
	if enter.Replacement != nil {
		current = enter.Replacement
	}
	if enter.Status == Halt {
		p.halted = true
		return current
	}

	if enter.Status != DoNotTraverseChildren {
		childStack := append(append([]tree.Node{}, stack...), current)

		children := current.Children()
		for i, child := range children {
			if p.halted {
				break
			}

			replaced := p.visit(child, childStack)
			if replaced != child {
				current.SetChild(i, replaced)
			}
		}
	}

	if p.halted {
		return current
	}

	leave := p.runHandlers(current, stack, false)
	if leave.Replacement != nil {
		current = leave.Replacement
	}
	if leave.Status == Halt {
		p.halted = true
	}

	return current
}

// runHandlers applies every registered handler, in order, at node. Statuses
// combine to the strongest seen; the first handler to supply a replacement
// wins and every later handler in this same call sees that replacement
//.
func (p *Pass) runHandlers(node tree.Node, stack []tree.Node, entering bool) Result {
	defer core.Tracef("%s %s", handlerPhaseName(entering), node.Kind().Name())()

	current := node
	replaced := false
	status := Continue

	for _, h := range p.handlers {
		var r Result
		if entering {
			r = h.OnEnter(current, stack)
		} else {
			r = h.OnLeave(current, stack)
		}

		status = strongestStatus(status, r.Status)

		if r.Replacement != nil && !replaced {
			current = r.Replacement
			replaced = true
		}
	}

	if replaced {
		return Result{Status: status, Replacement: current}
	}
	return Result{Status: status}
}

func handlerPhaseName(entering bool) string {
	if entering {
		return "enter"
	}
	return "leave"
}
