package typesys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	"github.com/sophie-lund/forge/langtools/source"
)

func i(width int) ast.Type {
	return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericSignedInt, width)
}

func u(width int) ast.Type {
	return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericUnsignedInt, width)
}

func f(width int) ast.Type {
	return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericFloat, width)
}

func basic(kind ast.BasicKind) ast.Type {
	return ast.NewTypeBasic(source.Range{}, kind)
}

func TestGetCastingMode(t *testing.T) {
	testCases := []struct {
		name     string
		from, to ast.Type
		expected typesys.CastingMode
	}{
		{"identical i32", i(32), i(32), typesys.CastingImplicit},
		{"i32 to i64 widens", i(32), i(64), typesys.CastingImplicit},
		{"i64 to i32 narrows", i(64), i(32), typesys.CastingExplicit},
		{"i32 to u32 same width", i(32), u(32), typesys.CastingExplicit},
		{"u8 to i32 different signedness", u(8), i(32), typesys.CastingExplicit},
		{"f32 to f64 widens", f(32), f(64), typesys.CastingImplicit},
		{"f64 to f32 narrows", f(64), f(32), typesys.CastingExplicit},
		{"i32 to f64 crosses kinds", i(32), f(64), typesys.CastingExplicit},
		{"f64 to i32 crosses kinds", f(64), i(32), typesys.CastingExplicit},
		{"void is always illegal", basic(ast.BasicVoid), i(32), typesys.CastingIllegal},
		{"bool to i32 is illegal", basic(ast.BasicBool), i(32), typesys.CastingIllegal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, typesys.GetCastingMode(tc.from, tc.to))
		})
	}
}

func TestGetCastingModePointers(t *testing.T) {
	elem := i(32)
	constElem := &ast.TypeWithBitWidth{}
	*constElem = *(i(32).(*ast.TypeWithBitWidth))
	constElem.Const = true

	nonConstPtr := ast.NewTypeUnary(source.Range{}, ast.TypeUnaryPointer, elem)
	constPtr := ast.NewTypeUnary(source.Range{}, ast.TypeUnaryPointer, constElem)

	assert.Equal(t, typesys.CastingImplicit, typesys.GetCastingMode(nonConstPtr, constPtr))
	assert.Equal(t, typesys.CastingExplicit, typesys.GetCastingMode(constPtr, nonConstPtr))
}

func TestGetCastingModeTypeAlias(t *testing.T) {
	transparent := ast.NewTypeAlias(source.Range{}, "UserID", i(32))
	distinct := ast.NewDistinctTypeAlias(source.Range{}, "Meters", f(64))

	transparentRef := ast.NewTypeSymbol(source.Range{}, "UserID")
	transparentRef.ResolveSymbol(transparent)

	distinctRef := ast.NewTypeSymbol(source.Range{}, "Meters")
	distinctRef.ResolveSymbol(distinct)

	otherDistinctRef := ast.NewTypeSymbol(source.Range{}, "Meters")
	otherDistinctRef.ResolveSymbol(distinct)

	t.Run("transparent alias behaves exactly like its aliased type", func(t *testing.T) {
		assert.Equal(t, typesys.CastingImplicit, typesys.GetCastingMode(transparentRef, i(32)))
		assert.Equal(t, typesys.CastingImplicit, typesys.GetCastingMode(i(32), transparentRef))
		assert.True(t, typesys.IsInteger(transparentRef))
	})

	t.Run("distinct alias requires an explicit cast to or from its aliased type", func(t *testing.T) {
		assert.Equal(t, typesys.CastingExplicit, typesys.GetCastingMode(distinctRef, f(64)))
		assert.Equal(t, typesys.CastingExplicit, typesys.GetCastingMode(f(64), distinctRef))
		assert.True(t, typesys.IsFloat(distinctRef))
	})

	t.Run("two references to the same distinct alias are still the same type", func(t *testing.T) {
		assert.Equal(t, typesys.CastingImplicit, typesys.GetCastingMode(distinctRef, otherDistinctRef))
	})

	t.Run("a distinct alias still can't cross into void", func(t *testing.T) {
		voidAlias := ast.NewDistinctTypeAlias(source.Range{}, "Nothing", basic(ast.BasicVoid))
		ref := ast.NewTypeSymbol(source.Range{}, "Nothing")
		ref.ResolveSymbol(voidAlias)
		assert.Equal(t, typesys.CastingIllegal, typesys.GetCastingMode(ref, i(32)))
	})
}

func TestGetArithmeticContainingType(t *testing.T) {
	t.Run("both float picks widest", func(t *testing.T) {
		result, ok := typesys.GetArithmeticContainingType(f(32), f(64))
		assert.True(t, ok)
		assert.True(t, typesys.IsFloat(result))
		width, _ := result.(*ast.TypeWithBitWidth)
		assert.Equal(t, 64, width.BitWidth)
	})

	t.Run("same signedness picks widest integer", func(t *testing.T) {
		result, ok := typesys.GetArithmeticContainingType(i(8), i(32))
		assert.True(t, ok)
		width := result.(*ast.TypeWithBitWidth)
		assert.Equal(t, 32, width.BitWidth)
	})

	t.Run("mixed signedness widens the signed side", func(t *testing.T) {
		result, ok := typesys.GetArithmeticContainingType(u(32), i(32))
		assert.True(t, ok)
		width := result.(*ast.TypeWithBitWidth)
		assert.Equal(t, ast.NumericSignedInt, width.NumericKind)
		assert.Equal(t, 64, width.BitWidth)
	})

	t.Run("no containing type for pointers", func(t *testing.T) {
		ptr := ast.NewTypeUnary(source.Range{}, ast.TypeUnaryPointer, i(32))
		_, ok := typesys.GetArithmeticContainingType(ptr, i(32))
		assert.False(t, ok)
	})
}
