package parser

import (
	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/parse"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

// ParseTranslationUnit parses an entire source file into its root node. On
// unrecoverable failure it still returns the partial tree built so far,
// alongside false: this stops and returns a partial tree with errors
// recorded".
func ParseTranslationUnit(ctx *parse.Context, path string) (*ast.TranslationUnit, bool) {
	var declarations []ast.Declaration
	ok := true

	for ctx.AreMoreTokens() {
		decl, declOk := ParseDeclaration(ctx)
		if !declOk {
			ok = false
			break
		}
		declarations = append(declarations, decl)
	}

	return ast.NewTranslationUnit(source.Range{}, path, declarations), ok
}

// ParseDeclaration parses a single top-level or namespace-member
// declaration.
func ParseDeclaration(ctx *parse.Context) (ast.Declaration, bool) {
	if !ctx.AreMoreTokens() {
		parse.ExpectedError(ctx, []*token.Kind{lexer.KindKeywordFunc})
		return nil, false
	}

	peek := ctx.PeekToken()

	switch {
	case peek.Kind.Equal(lexer.KindKeywordFunc):
		return parseFunctionDecl(ctx)

	case peek.Kind.Equal(lexer.KindKeywordLet) || peek.Kind.Equal(lexer.KindKeywordConst):
		decl, ok := parseVariableDecl(ctx)
		if !ok {
			return nil, false
		}
		if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi); !ok {
			return nil, false
		}
		return decl, true

	case peek.Kind.Equal(lexer.KindKeywordType):
		return parseTypeAliasDecl(ctx)

	case peek.Kind.Equal(lexer.KindKeywordStruct):
		return parseStructDecl(ctx)

	case peek.Kind.Equal(lexer.KindKeywordNamespace):
		return parseNamespaceDecl(ctx)

	default:
		parse.ExpectedError(ctx, []*token.Kind{lexer.KindKeywordFunc})
		return nil, false
	}
}

func parseFunctionDecl(ctx *parse.Context) (ast.Declaration, bool) {
	kw := ctx.ReadToken() // "func"

	name, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}

	if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindLParen); !ok {
		return nil, false
	}

	var params []*ast.Variable
	if !ctx.AreMoreTokens() || !ctx.PeekToken().Kind.Equal(lexer.KindRParen) {
		for {
			param, ok := parseParam(ctx)
			if !ok {
				return nil, false
			}
			params = append(params, param)

			if _, ok := parse.TokenByKind(ctx, lexer.KindComma); ok {
				continue
			}
			break
		}
	}

	if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindRParen); !ok {
		return nil, false
	}

	var returnType ast.Type
	if _, ok := parse.TokenByKind(ctx, lexer.KindArrow); ok {
		returnType, ok = ParseType(ctx)
		if !ok {
			return nil, false
		}
	} else {
		returnType = ast.NewTypeBasic(source.Range{}, ast.BasicVoid)
	}

	body, ok := ParseBlock(ctx)
	if !ok {
		return nil, false
	}

	return ast.NewFunction(source.Combine(kw.Range, body.Range()), name.Value, params, returnType, body), true
}

func parseParam(ctx *parse.Context) (*ast.Variable, bool) {
	name, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}

	if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindColon); !ok {
		return nil, false
	}

	paramType, ok := ParseType(ctx)
	if !ok {
		return nil, false
	}

	return ast.NewVariable(source.Combine(name.Range, paramType.Range()), name.Value, paramType, nil), true
}

// parseVariableDecl parses `let`/`const name (: Type)? (= expr)?` without
// consuming the trailing `;`, since it is shared between top-level
// declarations and local declaration-statements, whose terminators carry
// slightly different surrounding context.
func parseVariableDecl(ctx *parse.Context) (*ast.Variable, bool) {
	kw := ctx.ReadToken() // "let" or "const"
	declaredConst := kw.Kind.Equal(lexer.KindKeywordConst)

	name, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}

	var varType ast.Type
	if _, ok := parse.TokenByKind(ctx, lexer.KindColon); ok {
		varType, ok = ParseType(ctx)
		if !ok {
			return nil, false
		}
	}

	var initializer ast.Value
	end := name.Range
	if _, ok := parse.TokenByKind(ctx, lexer.KindAssign); ok {
		initializer, ok = ParseExpr(ctx)
		if !ok {
			return nil, false
		}
		end = initializer.Range()
	}

	if varType != nil {
		end = varType.Range()
		if initializer != nil {
			end = initializer.Range()
		}
	}

	if varType == nil && initializer == nil {
		ctx.Error(messaging.NewWithCode(
			name.Range, messaging.SeverityError, "untyped-variable",
			"variable declaration needs either a type annotation or an initializer",
		))
		return nil, false
	}

	variable := ast.NewVariable(source.Combine(kw.Range, end), name.Value, varType, initializer)
	variable.DeclaredConst = declaredConst
	return variable, true
}

func parseTypeAliasDecl(ctx *parse.Context) (ast.Declaration, bool) {
	kw := ctx.ReadToken() // "type"

	name, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}

	if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindAssign); !ok {
		return nil, false
	}

	aliased, ok := ParseType(ctx)
	if !ok {
		return nil, false
	}

	semi, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi)
	if !ok {
		return nil, false
	}

	return ast.NewTypeAlias(source.Combine(kw.Range, semi.Range), name.Value, aliased), true
}

func parseStructDecl(ctx *parse.Context) (ast.Declaration, bool) {
	kw := ctx.ReadToken() // "struct"

	name, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}

	open, ok := parse.ExpectTokenByKind(ctx, lexer.KindLBrace)
	if !ok {
		return nil, false
	}

	var members []*ast.Variable
	for ctx.AreMoreTokens() && !ctx.PeekToken().Kind.Equal(lexer.KindRBrace) {
		fieldName, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
		if !ok {
			return nil, false
		}
		if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindColon); !ok {
			return nil, false
		}
		fieldType, ok := ParseType(ctx)
		if !ok {
			return nil, false
		}
		semi, ok := parse.ExpectTokenByKind(ctx, lexer.KindSemi)
		if !ok {
			return nil, false
		}
		members = append(members, ast.NewVariable(source.Combine(fieldName.Range, semi.Range), fieldName.Value, fieldType, nil))
	}

	close, ok := parse.ExpectTokenByKind(ctx, lexer.KindRBrace)
	if !ok {
		return nil, false
	}

	fields := ast.NewTypeStructured(source.Combine(open.Range, close.Range), members)
	return ast.NewStructuredType(source.Combine(kw.Range, close.Range), name.Value, fields), true
}

func parseNamespaceDecl(ctx *parse.Context) (ast.Declaration, bool) {
	kw := ctx.ReadToken() // "namespace"

	name, ok := parse.ExpectTokenByKind(ctx, lexer.KindIdentifier)
	if !ok {
		return nil, false
	}

	if _, ok := parse.ExpectTokenByKind(ctx, lexer.KindLBrace); !ok {
		return nil, false
	}

	var members []ast.Declaration
	for ctx.AreMoreTokens() && !ctx.PeekToken().Kind.Equal(lexer.KindRBrace) {
		member, ok := ParseDeclaration(ctx)
		if !ok {
			return nil, false
		}
		members = append(members, member)
	}

	close, ok := parse.ExpectTokenByKind(ctx, lexer.KindRBrace)
	if !ok {
		return nil, false
	}

	return ast.NewNamespace(source.Combine(kw.Range, close.Range), name.Value, members), true
}
