package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
)

func TestAnalyzeDefaultIntegerLiteralType(t *testing.T) {
	unit, messages := analyzeSource(t, `
		func zero() -> i32 {
			return 0;
		}
	`)
	assert.False(t, messages.HasErrors())
	fn := unit.Declarations[0].(*ast.Function)
	ret := fn.Body.Statements[0].(*ast.StatementReturn)
	literal := ret.Inner.(*ast.ValueLiteralNumber)
	bw := literal.ValueType().(*ast.TypeWithBitWidth)
	assert.Equal(t, ast.NumericSignedInt, bw.NumericKind)
	assert.Equal(t, 32, bw.BitWidth)
}

func TestAnalyzeDefaultFloatLiteralType(t *testing.T) {
	unit, messages := analyzeSource(t, `
		func zero() -> f64 {
			return 0.0;
		}
	`)
	assert.False(t, messages.HasErrors())
	fn := unit.Declarations[0].(*ast.Function)
	ret := fn.Body.Statements[0].(*ast.StatementReturn)
	literal := ret.Inner.(*ast.ValueLiteralNumber)
	bw := literal.ValueType().(*ast.TypeWithBitWidth)
	assert.Equal(t, ast.NumericFloat, bw.NumericKind)
	assert.Equal(t, 64, bw.BitWidth)
}

func TestAnalyzeOversizedLiteralWarnsTruncated(t *testing.T) {
	_, messages := analyzeSource(t, `
		func overflow() -> i32 {
			return 2147483648i32;
		}
	`)
	assert.False(t, messages.HasErrors())

	found := false
	for _, m := range messages.Messages() {
		if m.Code == "number-literal-truncated" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyzeUndeclaredSymbol(t *testing.T) {
	_, messages := analyzeSource(t, `
		func f() -> i32 {
			return undeclared_name;
		}
	`)
	assert.True(t, messages.HasErrors())

	found := false
	for _, m := range messages.Messages() {
		if m.Code == "undeclared-symbol" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyzeBareReturnInNonVoidFunctionIsTypeMismatch(t *testing.T) {
	_, messages := analyzeSource(t, `
		func f() -> i32 {
			return;
		}
	`)
	assert.True(t, messages.HasErrors())

	found := false
	for _, m := range messages.Messages() {
		if m.Code == "type-mismatch" {
			found = true
		}
	}
	assert.True(t, found)
}
