package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/sema"
	"github.com/sophie-lund/forge/langtools/source"
)

func TestIsAssignableLetVariable(t *testing.T) {
	variable := ast.NewVariable(source.Range{}, "x", ast.NewTypeBasic(source.Range{}, ast.BasicISize), nil)
	symbol := ast.NewValueSymbol(source.Range{}, "x")
	symbol.ResolveSymbol(variable)
	assert.True(t, sema.IsAssignable(symbol))
}

func TestIsAssignableConstVariable(t *testing.T) {
	variable := ast.NewVariable(source.Range{}, "x", ast.NewTypeBasic(source.Range{}, ast.BasicISize), nil)
	variable.DeclaredConst = true
	symbol := ast.NewValueSymbol(source.Range{}, "x")
	symbol.ResolveSymbol(variable)
	assert.False(t, sema.IsAssignable(symbol))
}

func TestIsAssignableUnresolvedSymbol(t *testing.T) {
	symbol := ast.NewValueSymbol(source.Range{}, "x")
	assert.False(t, sema.IsAssignable(symbol))
}

func TestIsAssignableDereference(t *testing.T) {
	deref := ast.NewValueUnary(source.Range{}, ast.UnaryDeref, ast.NewValueSymbol(source.Range{}, "p"))
	assert.True(t, sema.IsAssignable(deref))
}

func TestIsAssignableAddressOfIsNotAssignable(t *testing.T) {
	addr := ast.NewValueUnary(source.Range{}, ast.UnaryGetAddr, ast.NewValueSymbol(source.Range{}, "x"))
	assert.False(t, sema.IsAssignable(addr))
}

func TestIsAssignableMemberAccessFollowsLeftOperand(t *testing.T) {
	variable := ast.NewVariable(source.Range{}, "p", ast.NewTypeBasic(source.Range{}, ast.BasicISize), nil)
	left := ast.NewValueSymbol(source.Range{}, "p")
	left.ResolveSymbol(variable)
	member := ast.NewValueBinary(source.Range{}, ast.BinaryMemberAccess, left, ast.NewValueFieldName(source.Range{}, "x"))
	assert.True(t, sema.IsAssignable(member))
}

func TestIsAssignableLiteralIsNot(t *testing.T) {
	assert.False(t, sema.IsAssignable(ast.NewValueLiteralBool(source.Range{}, true)))
}
