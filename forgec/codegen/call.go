package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/langtools/core"
)

// lowerCall only supports calling a function directly by name: Forge has no
// first-class function values reaching codegen, since every ValueCall's
// Callee that passes type resolution is a ValueSymbol resolved straight to
// a Function declaration.
func (l *lowerer) lowerCall(n *ast.ValueCall) value.Value {
	calleeSym, ok := n.Callee.(*ast.ValueSymbol)
	core.Assert(ok, "call codegen only supports direct function-symbol callees, got %T", n.Callee)

	target, ok := calleeSym.ResolvedSymbol()
	core.Assert(ok, "unresolved call target %q reached codegen", calleeSym.Name)

	fn, ok := target.(*ast.Function)
	core.Assert(ok, "call target %q did not resolve to a function declaration", calleeSym.Name)

	llvmFn, ok := l.funcs[fn]
	core.Assert(ok, "function %q used before it was declared in codegen", fn.Name)

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = l.lowerValue(a)
	}

	return l.block.NewCall(llvmFn, args...)
}
