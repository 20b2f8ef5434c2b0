package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/forgec/parser"
	"github.com/sophie-lund/forge/forgec/sema"
	"github.com/sophie-lund/forge/langtools/lex"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/parse"
	"github.com/sophie-lund/forge/langtools/source"
)

func analyzeSource(t *testing.T, content string) (*ast.TranslationUnit, *messaging.Context) {
	t.Helper()
	messages := messaging.NewContext()
	src := source.NewLiteral(content)
	tokens := lex.Driver(messages, src, lexer.Step)
	ctx := parse.NewContext(messages, tokens)
	unit, ok := parser.ParseTranslationUnit(ctx, src.Path)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	unit = sema.Analyze(messages, unit)
	return unit, messages
}

func TestAnalyzeArithmeticWidening(t *testing.T) {
	unit, messages := analyzeSource(t, `
		func add(a: i32, b: i64) -> i64 {
			return a + b;
		}
	`)
	assert.False(t, messages.HasErrors())

	fn := unit.Declarations[0].(*ast.Function)
	ret := fn.Body.Statements[0].(*ast.StatementReturn)
	binary := ret.Inner.(*ast.ValueBinary)

	// a (i32) should have been wrapped in an implicit cast up to i64 to match b.
	cast, ok := binary.Left.(*ast.ValueCast)
	if assert.True(t, ok) {
		bw := cast.TargetType.(*ast.TypeWithBitWidth)
		assert.Equal(t, 64, bw.BitWidth)
	}
	assert.Equal(t, 64, binary.ValueType().(*ast.TypeWithBitWidth).BitWidth)
}

func TestAnalyzeControlFlowWithLocals(t *testing.T) {
	_, messages := analyzeSource(t, `
		func classify(x: i32) -> i32 {
			let y: i32 = x * 2;
			if x > 0 {
				return y;
			} else {
				return 0;
			}
		}
	`)
	assert.False(t, messages.HasErrors())
}

func TestAnalyzeParameterDrivenBranch(t *testing.T) {
	_, messages := analyzeSource(t, `
		func abs(x: i32) -> i32 {
			if x < 0 {
				return -x;
			}
			return x;
		}
	`)
	assert.False(t, messages.HasErrors())
}

func TestAnalyzeEvenDetectionBitwiseForm(t *testing.T) {
	_, messages := analyzeSource(t, `
		func is_even(x: i32) -> bool {
			return (x & 1) == 0;
		}
	`)
	assert.False(t, messages.HasErrors())
}

func TestAnalyzeFloatMultiplication(t *testing.T) {
	unit, messages := analyzeSource(t, `
		func scale(x: f32, factor: f32) -> f32 {
			return x * factor;
		}
	`)
	assert.False(t, messages.HasErrors())

	fn := unit.Declarations[0].(*ast.Function)
	ret := fn.Body.Statements[0].(*ast.StatementReturn)
	binary := ret.Inner.(*ast.ValueBinary)
	bw := binary.ValueType().(*ast.TypeWithBitWidth)
	assert.Equal(t, ast.NumericFloat, bw.NumericKind)
	assert.Equal(t, 32, bw.BitWidth)
}

func TestAnalyzeMissingReturnIsError(t *testing.T) {
	_, messages := analyzeSource(t, `
		func broken(x: i32) -> i32 {
			if x > 0 {
				return x;
			}
		}
	`)
	assert.True(t, messages.HasErrors())
}

func TestAnalyzeConditionMustBeBool(t *testing.T) {
	_, messages := analyzeSource(t, `
		func broken(x: i32) -> i32 {
			if x {
				return 1;
			}
			return 0;
		}
	`)
	assert.True(t, messages.HasErrors())
}

func TestAnalyzeBreakOutsideLoop(t *testing.T) {
	_, messages := analyzeSource(t, `
		func broken() -> void {
			break;
		}
	`)
	assert.True(t, messages.HasErrors())
}

func TestAnalyzeCompoundAssignmentDesugars(t *testing.T) {
	unit, messages := analyzeSource(t, `
		func accumulate(x: i32) -> i32 {
			let total: i32 = 0;
			total += x;
			return total;
		}
	`)
	assert.False(t, messages.HasErrors())

	fn := unit.Declarations[0].(*ast.Function)
	assignStmt := fn.Body.Statements[1].(*ast.StatementValue)
	assign := assignStmt.Inner.(*ast.ValueBinary)
	assert.Equal(t, ast.BinaryAssign, assign.Op)

	rhs := assign.Right.(*ast.ValueBinary)
	assert.Equal(t, ast.BinaryAdd, rhs.Op)

	// The inner read of total on the right-hand side should resolve to the
	// same declaration as the assignment target.
	leftSymbol := assign.Left.(*ast.ValueSymbol)
	innerSymbol := rhs.Left.(*ast.ValueSymbol)
	leftTarget, _ := leftSymbol.ResolvedSymbol()
	innerTarget, _ := innerSymbol.ResolvedSymbol()
	assert.Same(t, leftTarget, innerTarget)
}
