package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/sema"
	"github.com/sophie-lund/forge/langtools/source"
)

func TestTerminatesBlockReturn(t *testing.T) {
	ret := ast.NewStatementReturn(source.Range{}, ast.NewValueLiteralBool(source.Range{}, true))
	assert.True(t, sema.TerminatesBlock(ret))
}

func TestTerminatesBlockBasic(t *testing.T) {
	brk := ast.NewStatementBasic(source.Range{}, ast.BasicStatementBreak)
	assert.True(t, sema.TerminatesBlock(brk))
}

func TestTerminatesBlockValueStatementDoesNot(t *testing.T) {
	stmt := ast.NewStatementValue(source.Range{}, ast.NewValueLiteralBool(source.Range{}, true))
	assert.False(t, sema.TerminatesBlock(stmt))
}

func TestTerminatesBlockIfWithoutElse(t *testing.T) {
	then := ast.NewStatementBlock(source.Range{}, []ast.Statement{
		ast.NewStatementReturn(source.Range{}, nil),
	}, false)
	ifStmt := ast.NewStatementIf(source.Range{}, ast.NewValueLiteralBool(source.Range{}, true), then, nil)
	assert.False(t, sema.TerminatesBlock(ifStmt))
}

func TestTerminatesBlockIfWithBothBranchesTerminating(t *testing.T) {
	then := ast.NewStatementBlock(source.Range{}, []ast.Statement{
		ast.NewStatementReturn(source.Range{}, nil),
	}, false)
	els := ast.NewStatementBlock(source.Range{}, []ast.Statement{
		ast.NewStatementBasic(source.Range{}, ast.BasicStatementReturnVoid),
	}, false)
	ifStmt := ast.NewStatementIf(source.Range{}, ast.NewValueLiteralBool(source.Range{}, true), then, els)
	assert.True(t, sema.TerminatesBlock(ifStmt))
}

func TestTerminatesBlockListEmpty(t *testing.T) {
	assert.False(t, sema.TerminatesBlockList(nil))
}
