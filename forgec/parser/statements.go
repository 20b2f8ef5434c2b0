package parser

import (
	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/langtools/parse"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

// ParseBlock parses a `{ statement* }` block with its own ordered scope.
func ParseBlock(ctx *parse.Context) (*ast.StatementBlock, bool) {
	open, ok := parse.ExpectTokenByKind(ctx, lexer.KindLBrace)
	if !ok {
		return nil, false
	}

	var statements []ast.Statement
	for ctx.AreMoreTokens() && !ctx.PeekToken().Kind.Equal(lexer.KindRBrace) {
		stmt, ok := ParseStatement(ctx)
		if !ok {
			return nil, false
		}
		statements = append(statements, stmt)
	}

	close, ok := parse.ExpectTokenByKind(ctx, lexer.KindRBrace)
	if !ok {
		return nil, false
	}

	return ast.NewStatementBlock(source.Combine(open.Range, close.Range), statements, false), true
}

// ParseStatement parses a single statement.
func ParseStatement(ctx *parse.Context) (ast.Statement, bool) {
	if !ctx.AreMoreTokens() {
		parse.ExpectedError(ctx, []*token.Kind{lexer.KindLBrace})
		return nil, false
	}

	peek := ctx.PeekToken()

	switch {
	case peek.Kind.Equal(lexer.KindLBrace):
		return ParseBlock(ctx)

	case peek.Kind.Equal(lexer.KindKeywordIf):
		return parseIf(ctx)

	case peek.Kind.Equal(lexer.KindKeywordWhile):
		return parseWhile(ctx)

	case peek.Kind.Equal(lexer.KindKeywordReturn):
		return parseReturn(ctx)

	case peek.Kind.Equal(lexer.KindKeywordContinue):
		ctx.ReadToken()
		semi, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi)
		if !ok {
			return nil, false
		}
		return ast.NewStatementBasic(source.Combine(peek.Range, semi.Range), ast.BasicStatementContinue), true

	case peek.Kind.Equal(lexer.KindKeywordBreak):
		ctx.ReadToken()
		semi, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi)
		if !ok {
			return nil, false
		}
		return ast.NewStatementBasic(source.Combine(peek.Range, semi.Range), ast.BasicStatementBreak), true

	case peek.Kind.Equal(lexer.KindKeywordLet) || peek.Kind.Equal(lexer.KindKeywordConst):
		decl, ok := parseVariableDecl(ctx)
		if !ok {
			return nil, false
		}
		semi, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi)
		if !ok {
			return nil, false
		}
		return ast.NewStatementDeclaration(source.Combine(decl.Range(), semi.Range), decl), true

	default:
		value, ok := ParseExpr(ctx)
		if !ok {
			return nil, false
		}
		semi, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi)
		if !ok {
			return nil, false
		}
		return ast.NewStatementValue(source.Combine(value.Range(), semi.Range), value), true
	}
}

func parseIf(ctx *parse.Context) (ast.Statement, bool) {
	kw := ctx.ReadToken() // "if"

	condition, ok := ParseExpr(ctx)
	if !ok {
		return nil, false
	}

	then, ok := ParseBlock(ctx)
	if !ok {
		return nil, false
	}

	end := then.Range()
	var els *ast.StatementBlock

	if _, ok := parse.TokenByKind(ctx, lexer.KindKeywordElse); ok {
		if ctx.AreMoreTokens() && ctx.PeekToken().Kind.Equal(lexer.KindKeywordIf) {
			nested, ok := parseIf(ctx)
			if !ok {
				return nil, false
			}
			// Wrap the nested if-statement in a single-statement block so
			// `else if` shares StatementIf's Else field shape with `else {}`.
			els = ast.NewStatementBlock(nested.Range(), []ast.Statement{nested}, false)
		} else {
			els, ok = ParseBlock(ctx)
			if !ok {
				return nil, false
			}
		}
		end = els.Range()
	}

	return ast.NewStatementIf(source.Combine(kw.Range, end), condition, then, els), true
}

func parseWhile(ctx *parse.Context) (ast.Statement, bool) {
	kw := ctx.ReadToken() // "while"

	condition, ok := ParseExpr(ctx)
	if !ok {
		return nil, false
	}

	body, ok := ParseBlock(ctx)
	if !ok {
		return nil, false
	}

	return ast.NewStatementWhile(source.Combine(kw.Range, body.Range()), condition, body), true
}

func parseReturn(ctx *parse.Context) (ast.Statement, bool) {
	kw := ctx.ReadToken() // "return"

	if semi, ok := parse.TokenByKind(ctx, lexer.KindSemi); ok {
		return ast.NewStatementBasic(source.Combine(kw.Range, semi.Range), ast.BasicStatementReturnVoid), true
	}

	value, ok := ParseExpr(ctx)
	if !ok {
		return nil, false
	}

	semi, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi)
	if !ok {
		return nil, false
	}

	return ast.NewStatementReturn(source.Combine(kw.Range, semi.Range), value), true
}
