// Package parser is the Forge-specific recursive-descent parser: hand
// written productions for declarations and statements, plus a precedence-
// climbing expression parser built on langtools/parse.
package parser

import (
	"strings"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/langtools/parse"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

type binaryOpInfo struct {
	op         ast.BinaryOp
	precedence int
	rightAssoc bool
}

// binaryOps implements the precedence ladder (lowest to highest): assignment (right)
// < logical-or < logical-and < equality < relational < bit-or < bit-xor <
// bit-and < shift < additive < multiplicative < exponent (right) <
// member-access.
//
// C binds equality tighter than bit-and, so `a & 1 == 0` silently means
// `a & (1 == 0)` -- the classic gotcha, not a deliberate design. Here the
// bitwise operators bind tighter than comparison instead, so `a & 1 == 0`
// reads as `(a & 1) == 0`.
var binaryOps = map[*token.Kind]binaryOpInfo{
	lexer.KindAssign:         {ast.BinaryAssign, 1, true},
	lexer.KindPlusAssign:     {ast.BinaryAddAssign, 1, true},
	lexer.KindMinusAssign:    {ast.BinarySubAssign, 1, true},
	lexer.KindStarAssign:     {ast.BinaryMulAssign, 1, true},
	lexer.KindSlashAssign:    {ast.BinaryDivAssign, 1, true},
	lexer.KindPercentAssign:  {ast.BinaryModAssign, 1, true},
	lexer.KindStarStarAssign: {ast.BinaryExpAssign, 1, true},
	lexer.KindAmpAssign:      {ast.BinaryBitAndAssign, 1, true},
	lexer.KindPipeAssign:     {ast.BinaryBitOrAssign, 1, true},
	lexer.KindCaretAssign:    {ast.BinaryBitXorAssign, 1, true},
	lexer.KindShlAssign:      {ast.BinaryShlAssign, 1, true},
	lexer.KindShrAssign:      {ast.BinaryShrAssign, 1, true},

	lexer.KindPipePipe: {ast.BinaryBoolOr, 2, false},
	lexer.KindAmpAmp:   {ast.BinaryBoolAnd, 3, false},

	lexer.KindEq: {ast.BinaryEq, 4, false},
	lexer.KindNe: {ast.BinaryNe, 4, false},

	lexer.KindLt: {ast.BinaryLt, 5, false},
	lexer.KindLe: {ast.BinaryLe, 5, false},
	lexer.KindGt: {ast.BinaryGt, 5, false},
	lexer.KindGe: {ast.BinaryGe, 5, false},

	lexer.KindPipe:  {ast.BinaryBitOr, 6, false},
	lexer.KindCaret: {ast.BinaryBitXor, 7, false},
	lexer.KindAmp:   {ast.BinaryBitAnd, 8, false},

	lexer.KindShl: {ast.BinaryShl, 9, false},
	lexer.KindShr: {ast.BinaryShr, 9, false},

	lexer.KindPlus:  {ast.BinaryAdd, 10, false},
	lexer.KindMinus: {ast.BinarySub, 10, false},

	lexer.KindStar:    {ast.BinaryMul, 11, false},
	lexer.KindSlash:   {ast.BinaryDiv, 11, false},
	lexer.KindPercent: {ast.BinaryMod, 11, false},

	lexer.KindStarStar: {ast.BinaryExp, 12, true},
}

const memberAccessPrecedence = 14

// ParseExpr parses an expression at the lowest (assignment) precedence.
func ParseExpr(ctx *parse.Context) (ast.Value, bool) {
	return parseExprPrec(ctx, 1)
}

func parseExprPrec(ctx *parse.Context, minPrecedence int) (ast.Value, bool) {
	left, ok := parseUnary(ctx)
	if !ok {
		return nil, false
	}

	for {
		if !ctx.AreMoreTokens() {
			break
		}

		peek := ctx.PeekToken()

		if peek.Kind.Equal(lexer.KindDot) {
			if memberAccessPrecedence < minPrecedence {
				break
			}
			left, ok = parseMemberAccess(ctx, left)
			if !ok {
				return nil, false
			}
			continue
		}

		info, isBinary := binaryOps[peek.Kind]
		if !isBinary || info.precedence < minPrecedence {
			break
		}

		ctx.ReadToken()

		nextMin := info.precedence + 1
		if info.rightAssoc {
			nextMin = info.precedence
		}

		right, ok := parseExprPrec(ctx, nextMin)
		if !ok {
			return nil, false
		}

		left = ast.NewValueBinary(source.Combine(left.Range(), right.Range()), info.op, left, right)
	}

	return left, true
}

func parseMemberAccess(ctx *parse.Context, left ast.Value) (ast.Value, bool) {
	ctx.ReadToken() // "."
	name, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}
	field := ast.NewValueFieldName(name.Range, name.Value)
	return ast.NewValueBinary(source.Combine(left.Range(), name.Range), ast.BinaryMemberAccess, left, field), true
}

var unaryTokenOps = map[*token.Kind]ast.UnaryOp{
	lexer.KindBang:  ast.UnaryBoolNot,
	lexer.KindTilde: ast.UnaryBitNot,
	lexer.KindPlus:  ast.UnaryPos,
	lexer.KindMinus: ast.UnaryNeg,
	lexer.KindStar:  ast.UnaryDeref,
	lexer.KindAmp:   ast.UnaryGetAddr,
}

func parseUnary(ctx *parse.Context) (ast.Value, bool) {
	if ctx.AreMoreTokens() {
		peek := ctx.PeekToken()
		if op, ok := unaryTokenOps[peek.Kind]; ok {
			ctx.ReadToken()
			operand, ok := parseUnary(ctx)
			if !ok {
				return nil, false
			}
			return ast.NewValueUnary(source.Combine(peek.Range, operand.Range()), op, operand), true
		}
	}

	return parsePostfix(ctx)
}

func parsePostfix(ctx *parse.Context) (ast.Value, bool) {
	operand, ok := parsePrimary(ctx)
	if !ok {
		return nil, false
	}

	for ctx.AreMoreTokens() {
		switch {
		case ctx.PeekToken().Kind.Equal(lexer.KindLParen):
			operand, ok = parseCall(ctx, operand)
		case ctx.PeekToken().Kind.Equal(lexer.KindDot):
			operand, ok = parseMemberAccess(ctx, operand)
		case ctx.PeekToken().Kind.Equal(lexer.KindKeywordAs):
			operand, ok = parseCast(ctx, operand)
		default:
			return operand, true
		}
		if !ok {
			return nil, false
		}
	}

	return operand, true
}

// parseCast parses the `as` suffix of an explicit cast, e.g. `x as i64`. It
// binds tighter than a call so `f() as i64` casts the call's result, and a
// chain `x as i64 as f32` reads left-to-right.
func parseCast(ctx *parse.Context, operand ast.Value) (ast.Value, bool) {
	ctx.ReadToken() // "as"
	targetType, ok := ParseType(ctx)
	if !ok {
		return nil, false
	}
	return ast.NewValueCast(source.Combine(operand.Range(), targetType.Range()), operand, targetType), true
}

func parseCall(ctx *parse.Context, callee ast.Value) (ast.Value, bool) {
	ctx.ReadToken() // "("

	var args []ast.Value
	if !ctx.AreMoreTokens() || !ctx.PeekToken().Kind.Equal(lexer.KindRParen) {
		for {
			arg, ok := ParseExpr(ctx)
			if !ok {
				return nil, false
			}
			args = append(args, arg)

			if _, ok := parse.TokenByKind(ctx, lexer.KindComma); ok {
				continue
			}
			break
		}
	}

	closeParen, ok := parse.ExpectTokenByKind(ctx, lexer.KindRParen)
	if !ok {
		return nil, false
	}

	return ast.NewValueCall(source.Combine(callee.Range(), closeParen.Range), callee, args), true
}

func parsePrimary(ctx *parse.Context) (ast.Value, bool) {
	if !ctx.AreMoreTokens() {
		parse.ExpectedError(ctx, []*token.Kind{lexer.KindIdentifier})
		return nil, false
	}

	peek := ctx.PeekToken()

	switch {
	case peek.Kind.Equal(lexer.KindKeywordTrue):
		ctx.ReadToken()
		return ast.NewValueLiteralBool(peek.Range, true), true

	case peek.Kind.Equal(lexer.KindKeywordFalse):
		ctx.ReadToken()
		return ast.NewValueLiteralBool(peek.Range, false), true

	case peek.Kind.Equal(lexer.KindIntegerLiteral) || peek.Kind.Equal(lexer.KindFloatLiteral):
		ctx.ReadToken()
		return parseNumberLiteral(peek), true

	case peek.Kind.Equal(lexer.KindIdentifier):
		ctx.ReadToken()
		return ast.NewValueSymbol(peek.Range, peek.Value), true

	case peek.Kind.Equal(lexer.KindLParen):
		ctx.ReadToken()
		inner, ok := ParseExpr(ctx)
		if !ok {
			return nil, false
		}
		if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindRParen); !ok {
			return nil, false
		}
		return inner, true

	default:
		parse.ExpectedError(ctx, []*token.Kind{lexer.KindIdentifier})
		return nil, false
	}
}

// parseNumberLiteral splits a lexed literal's suffix (if any) back out into
// an explicit Type node, matching ValueLiteralNumber.ExplicitType.
func parseNumberLiteral(t token.Token) *ast.ValueLiteralNumber {
	text, explicitType := splitNumberSuffix(t.Value)
	return ast.NewValueLiteralNumber(t.Range, text, explicitType)
}

var knownNumberSuffixes = []string{"i64", "i32", "i16", "i8", "u64", "u32", "u16", "u8", "f64", "f32"}

func splitNumberSuffix(text string) (string, ast.Type) {
	for _, suffix := range knownNumberSuffixes {
		if strings.HasSuffix(text, suffix) && len(text) > len(suffix) {
			base := text[:len(text)-len(suffix)]
			// A trailing digit run that happens to end in, e.g., "8" from
			// "u8" must not be mistaken for the suffix "u8" itself: confirm
			// the character before the suffix is a digit or '.'.
			last := base[len(base)-1]
			if last >= '0' && last <= '9' || last == '.' {
				return base, numberSuffixType(suffix)
			}
		}
	}
	return text, nil
}

func numberSuffixType(suffix string) ast.Type {
	switch suffix {
	case "i8":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericSignedInt, 8)
	case "i16":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericSignedInt, 16)
	case "i32":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericSignedInt, 32)
	case "i64":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericSignedInt, 64)
	case "u8":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericUnsignedInt, 8)
	case "u16":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericUnsignedInt, 16)
	case "u32":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericUnsignedInt, 32)
	case "u64":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericUnsignedInt, 64)
	case "f32":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericFloat, 32)
	case "f64":
		return ast.NewTypeWithBitWidth(source.Range{}, ast.NumericFloat, 64)
	default:
		return nil
	}
}
