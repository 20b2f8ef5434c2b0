package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/pass"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

// buildNestedValue returns !(true) wrapped once more in a unary, giving a
// three-deep chain to traverse: unary -> unary -> literal.
func buildNestedValue() *ast.ValueUnary {
	rng := source.Range{}
	inner := ast.NewValueUnary(rng, ast.UnaryBoolNot, ast.NewValueLiteralBool(rng, true))
	return ast.NewValueUnary(rng, ast.UnaryBoolNot, inner)
}

func TestRunVisitsEnterThenChildrenThenLeave(t *testing.T) {
	var order []string

	p := pass.New(messaging.NewContext())
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			order = append(order, "enter "+node.Kind().Name())
			return pass.ContinueResult()
		},
		Leave: func(node tree.Node, stack []tree.Node) pass.Result {
			order = append(order, "leave "+node.Kind().Name())
			return pass.ContinueResult()
		},
	})

	p.Run(buildNestedValue())

	assert.Equal(t, []string{
		"enter value_unary",
		"enter value_unary",
		"enter value_literal_bool",
		"leave value_literal_bool",
		"leave value_unary",
		"leave value_unary",
	}, order)
}

func TestRunStackHoldsAncestorsRootFirst(t *testing.T) {
	var leafStackDepth int

	p := pass.New(messaging.NewContext())
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			if _, ok := node.(*ast.ValueLiteralBool); ok {
				leafStackDepth = len(stack)
				for i := range stack {
					assert.Equal(t, "value_unary", stack[i].Kind().Name())
				}
			}
			return pass.ContinueResult()
		},
	})

	p.Run(buildNestedValue())
	assert.Equal(t, 2, leafStackDepth)
}

func TestRunAppliesReplacementIntoParentSlot(t *testing.T) {
	rng := source.Range{}
	replacement := ast.NewValueLiteralBool(rng, false)

	p := pass.New(messaging.NewContext())
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			if lit, ok := node.(*ast.ValueLiteralBool); ok && lit.Value {
				return pass.ReplaceWith(replacement)
			}
			return pass.ContinueResult()
		},
	})

	root := p.Run(buildNestedValue()).(*ast.ValueUnary)

	inner := root.Operand.(*ast.ValueUnary)
	assert.Same(t, replacement, inner.Operand)
}

func TestRunDoNotTraverseChildrenPrunes(t *testing.T) {
	visitedLiteral := false

	p := pass.New(messaging.NewContext())
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			switch node.(type) {
			case *ast.ValueUnary:
				if len(stack) == 1 {
					return pass.Result{Status: pass.DoNotTraverseChildren}
				}
			case *ast.ValueLiteralBool:
				visitedLiteral = true
			}
			return pass.ContinueResult()
		},
	})

	p.Run(buildNestedValue())
	assert.False(t, visitedLiteral, "children below a pruned node must not be visited")
}

func TestRunHaltStopsTraversal(t *testing.T) {
	var entered int

	p := pass.New(messaging.NewContext())
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			entered++
			return pass.Result{Status: pass.Halt}
		},
	})

	p.Run(buildNestedValue())
	assert.Equal(t, 1, entered)
}

func TestRunMergesHandlerStatusesToStrongest(t *testing.T) {
	visitedLiteral := false

	p := pass.New(messaging.NewContext())
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			return pass.ContinueResult()
		},
	})
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			return pass.Result{Status: pass.DoNotTraverseChildren}
		},
	})
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			if _, ok := node.(*ast.ValueLiteralBool); ok {
				visitedLiteral = true
			}
			return pass.ContinueResult()
		},
	})

	p.Run(buildNestedValue())
	assert.False(t, visitedLiteral)
}

func TestRunFirstReplacementWinsAndLaterHandlersSeeIt(t *testing.T) {
	rng := source.Range{}
	first := ast.NewValueLiteralBool(rng, false)
	var seenByLater tree.Node

	p := pass.New(messaging.NewContext())
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			if lit, ok := node.(*ast.ValueLiteralBool); ok && lit.Value {
				return pass.ReplaceWith(first)
			}
			return pass.ContinueResult()
		},
	})
	p.AddHandler(pass.HandlerFuncs{
		Enter: func(node tree.Node, stack []tree.Node) pass.Result {
			if _, ok := node.(*ast.ValueLiteralBool); ok {
				seenByLater = node
				return pass.ReplaceWith(ast.NewValueLiteralBool(rng, true))
			}
			return pass.ContinueResult()
		},
	})

	root := p.Run(buildNestedValue()).(*ast.ValueUnary)

	assert.Same(t, first, seenByLater, "later handlers must see the first handler's replacement")
	inner := root.Operand.(*ast.ValueUnary)
	assert.Same(t, first, inner.Operand, "the first replacement wins over later ones")
}
