package sema

import "github.com/sophie-lund/forge/forgec/ast"

// IsAssignable reports whether v may stand on the left of an assignment:
// true for non-const variable symbols, pointer dereferences, and member
// accesses whose left operand is itself assignable.
func IsAssignable(v ast.Value) bool {
	switch value := v.(type) {
	case *ast.ValueSymbol:
		target, ok := value.ResolvedSymbol()
		if !ok {
			return false
		}
		variable, ok := target.(*ast.Variable)
		return ok && !variable.DeclaredConst

	case *ast.ValueUnary:
		return value.Op == ast.UnaryDeref

	case *ast.ValueBinary:
		if value.Op != ast.BinaryMemberAccess {
			return false
		}
		return IsAssignable(value.Left)

	default:
		return false
	}
}
