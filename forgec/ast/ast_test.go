package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/tree"
)

// buildSampleUnit returns a translation unit exercising every node family:
// a struct, a type alias, a global, and a function whose body contains
// locals, control flow, calls, casts, and member access.
func buildSampleUnit() *ast.TranslationUnit {
	rng := source.Range{}

	point := ast.NewStructuredType(rng, "Point", ast.NewTypeStructured(rng, []*ast.Variable{
		ast.NewVariable(rng, "x", ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 32), nil),
		ast.NewVariable(rng, "y", ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 32), nil),
	}))

	alias := ast.NewTypeAlias(rng, "Scalar", ast.NewTypeWithBitWidth(rng, ast.NumericFloat, 64))

	global := ast.NewVariable(rng, "limit",
		ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 32),
		ast.NewValueLiteralNumber(rng, "100", nil))

	body := ast.NewStatementBlock(rng, []ast.Statement{
		ast.NewStatementDeclaration(rng, ast.NewVariable(rng, "total",
			ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 32),
			ast.NewValueLiteralNumber(rng, "0", nil))),
		ast.NewStatementWhile(rng,
			ast.NewValueBinary(rng, ast.BinaryLt,
				ast.NewValueSymbol(rng, "total"),
				ast.NewValueSymbol(rng, "limit")),
			ast.NewStatementBlock(rng, []ast.Statement{
				ast.NewStatementValue(rng, ast.NewValueBinary(rng, ast.BinaryAddAssign,
					ast.NewValueSymbol(rng, "total"),
					ast.NewValueLiteralNumber(rng, "1", nil))),
				ast.NewStatementIf(rng,
					ast.NewValueLiteralBool(rng, false),
					ast.NewStatementBlock(rng, []ast.Statement{
						ast.NewStatementBasic(rng, ast.BasicStatementBreak),
					}, false),
					nil),
			}, false)),
		ast.NewStatementReturn(rng, ast.NewValueCast(rng,
			ast.NewValueSymbol(rng, "total"),
			ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 64))),
	}, false)

	fn := ast.NewFunction(rng, "count",
		[]*ast.Variable{
			ast.NewVariable(rng, "start", ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 32), nil),
		},
		ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 64),
		body)

	return ast.NewTranslationUnit(rng, "--", []ast.Declaration{point, alias, global, fn})
}

func TestCloneComparesEqual(t *testing.T) {
	unit := buildSampleUnit()
	clone := unit.Clone()

	assert.True(t, clone.Compare(unit))
	assert.True(t, unit.Compare(clone), "compare must be symmetric")
	assert.True(t, unit.Compare(unit), "compare must be reflexive")
}

func TestCloneIsDeep(t *testing.T) {
	unit := buildSampleUnit()
	clone := unit.Clone().(*ast.TranslationUnit)

	// Renaming a declaration in the clone must not leak into the original.
	clone.Declarations[3].(*ast.Function).Name = "renamed"
	assert.Equal(t, "count", unit.Declarations[3].(*ast.Function).Name)
	assert.False(t, clone.Compare(unit))
}

func TestCompareIgnoresSourceRanges(t *testing.T) {
	src := source.NewLiteral("x\ny\n")
	withRange := ast.NewValueLiteralBool(source.At(src.LocationAt(2)), true)
	withoutRange := ast.NewValueLiteralBool(source.Range{}, true)

	assert.True(t, withRange.Compare(withoutRange))
}

func TestCompareDistinguishesPayload(t *testing.T) {
	rng := source.Range{}

	assert.False(t, ast.NewValueLiteralBool(rng, true).Compare(ast.NewValueLiteralBool(rng, false)))
	assert.False(t, ast.NewValueLiteralBool(rng, true).Compare(ast.NewValueLiteralNumber(rng, "1", nil)))
	assert.False(t,
		ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 32).
			Compare(ast.NewTypeWithBitWidth(rng, ast.NumericSignedInt, 64)))
}

func TestFormatDebugIsDeterministic(t *testing.T) {
	unit := buildSampleUnit()

	first := tree.FormatDebug(unit)
	second := tree.FormatDebug(unit)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, first, tree.FormatDebug(unit.Clone()),
		"a clone's debug dump must match its original's byte for byte")
}

func TestCompoundAssignmentBaseOperator(t *testing.T) {
	base, ok := ast.TryGetCompoundAssignmentBaseOperator(ast.BinaryAddAssign)
	assert.True(t, ok)
	assert.Equal(t, ast.BinaryAdd, base)

	_, ok = ast.TryGetCompoundAssignmentBaseOperator(ast.BinaryAdd)
	assert.False(t, ok)

	assert.True(t, ast.BinaryShlAssign.IsCompoundAssignment())
	assert.False(t, ast.BinaryAssign.IsCompoundAssignment())
}
