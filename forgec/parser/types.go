package parser

import (
	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/langtools/parse"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

var basicTypeNames = map[string]ast.BasicKind{
	"bool":  ast.BasicBool,
	"void":  ast.BasicVoid,
	"isize": ast.BasicISize,
	"usize": ast.BasicUSize,
}

var bitWidthTypeNames = map[string]struct {
	kind  ast.NumericKind
	width int
}{
	"i8":  {ast.NumericSignedInt, 8},
	"i16": {ast.NumericSignedInt, 16},
	"i32": {ast.NumericSignedInt, 32},
	"i64": {ast.NumericSignedInt, 64},
	"u8":  {ast.NumericUnsignedInt, 8},
	"u16": {ast.NumericUnsignedInt, 16},
	"u32": {ast.NumericUnsignedInt, 32},
	"u64": {ast.NumericUnsignedInt, 64},
	"f32": {ast.NumericFloat, 32},
	"f64": {ast.NumericFloat, 64},
}

// ParseType parses a type expression: an optional `const` qualifier, then a
// pointer, basic, bit-width, or named (symbol) type.
func ParseType(ctx *parse.Context) (ast.Type, bool) {
	isConst := false
	start := source.Range{}

	if t, ok := parse.TokenByKind(ctx, lexer.KindKeywordConst); ok {
		isConst = true
		start = t.Range
	}

	if t, ok := parse.TokenByKind(ctx, lexer.KindStar); ok {
		if start.IsEmpty() {
			start = t.Range
		}
		operand, ok := ParseType(ctx)
		if !ok {
			return nil, false
		}
		result := ast.NewTypeUnary(source.Combine(start, operand.Range()), ast.TypeUnaryPointer, operand)
		result.Const = isConst
		return result, true
	}

	if !ctx.AreMoreTokens() {
		parse.ExpectedError(ctx, []*token.Kind{lexer.KindIdentifier})
		return nil, false
	}

	identTok, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}
	if start.IsEmpty() {
		start = identTok.Range
	}

	if kind, ok := basicTypeNames[identTok.Value]; ok {
		result := ast.NewTypeBasic(source.Combine(start, identTok.Range), kind)
		result.Const = isConst
		return result, true
	}

	if info, ok := bitWidthTypeNames[identTok.Value]; ok {
		result := ast.NewTypeWithBitWidth(source.Combine(start, identTok.Range), info.kind, info.width)
		result.Const = isConst
		return result, true
	}

	result := ast.NewTypeSymbol(source.Combine(start, identTok.Range), identTok.Value)
	result.Const = isConst
	return result, true
}
