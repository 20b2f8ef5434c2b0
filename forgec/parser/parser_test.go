package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/forgec/parser"
	"github.com/sophie-lund/forge/langtools/lex"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/parse"
	"github.com/sophie-lund/forge/langtools/source"
)

func parseSource(t *testing.T, content string) (*ast.TranslationUnit, bool, *messaging.Context) {
	t.Helper()
	messages := messaging.NewContext()
	src := source.NewLiteral(content)
	tokens := lex.Driver(messages, src, lexer.Step)
	ctx := parse.NewContext(messages, tokens)
	unit, ok := parser.ParseTranslationUnit(ctx, src.Path)
	return unit, ok, messages
}

func TestParseFunctionDecl(t *testing.T) {
	unit, ok, messages := parseSource(t, `
		func add(a: i32, b: i32) -> i32 {
			return a + b;
		}
	`)

	assert.True(t, ok)
	assert.False(t, messages.HasErrors())
	if assert.Len(t, unit.Declarations, 1) {
		fn, ok := unit.Declarations[0].(*ast.Function)
		assert.True(t, ok)
		assert.Equal(t, "add", fn.Name)
		assert.Len(t, fn.Params, 2)
		assert.NotNil(t, fn.Body)
	}
}

func TestParseVariableDecl(t *testing.T) {
	unit, ok, messages := parseSource(t, `let x: i32 = 5;`)
	assert.True(t, ok)
	assert.False(t, messages.HasErrors())
	variable := unit.Declarations[0].(*ast.Variable)
	assert.Equal(t, "x", variable.Name)
	assert.False(t, variable.DeclaredConst)
}

func TestParseConstDecl(t *testing.T) {
	unit, ok, _ := parseSource(t, `const x: i32 = 5;`)
	assert.True(t, ok)
	variable := unit.Declarations[0].(*ast.Variable)
	assert.True(t, variable.DeclaredConst)
}

func TestParseStructDecl(t *testing.T) {
	unit, ok, messages := parseSource(t, `
		struct Point {
			x: i32;
			y: i32;
		}
	`)
	assert.True(t, ok)
	assert.False(t, messages.HasErrors())
	structType := unit.Declarations[0].(*ast.StructuredType)
	assert.Equal(t, "Point", structType.Name)
	assert.Len(t, structType.Fields.Members, 2)
}

func TestParseNamespaceForwardReference(t *testing.T) {
	unit, ok, messages := parseSource(t, `
		namespace ns {
			func a() -> i32 { return b(); }
			func b() -> i32 { return 1; }
		}
	`)
	assert.True(t, ok)
	assert.False(t, messages.HasErrors())
	ns := unit.Declarations[0].(*ast.Namespace)
	assert.Equal(t, "ns", ns.Name)
	assert.Len(t, ns.Members, 2)
}

func TestParseExprPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3).
	messages := messaging.NewContext()
	src := source.NewLiteral("1 + 2 * 3")
	tokens := lex.Driver(messages, src, lexer.Step)
	ctx := parse.NewContext(messages, tokens)

	value, ok := parser.ParseExpr(ctx)
	assert.True(t, ok)
	assert.False(t, messages.HasErrors())

	binary, ok := value.(*ast.ValueBinary)
	assert.True(t, ok)
	assert.Equal(t, ast.BinaryAdd, binary.Op)

	right, ok := binary.Right.(*ast.ValueBinary)
	assert.True(t, ok)
	assert.Equal(t, ast.BinaryMul, right.Op)
}

func TestParseMemberAccessAndCall(t *testing.T) {
	messages := messaging.NewContext()
	src := source.NewLiteral("p.x()")
	tokens := lex.Driver(messages, src, lexer.Step)
	ctx := parse.NewContext(messages, tokens)

	value, ok := parser.ParseExpr(ctx)
	assert.True(t, ok)
	assert.False(t, messages.HasErrors())

	call, ok := value.(*ast.ValueCall)
	assert.True(t, ok)

	member, ok := call.Callee.(*ast.ValueBinary)
	assert.True(t, ok)
	assert.Equal(t, ast.BinaryMemberAccess, member.Op)

	field, ok := member.Right.(*ast.ValueFieldName)
	assert.True(t, ok)
	assert.Equal(t, "x", field.Name)
}

func TestParsePointerType(t *testing.T) {
	unit, ok, messages := parseSource(t, `let p: *i32 = &x;`)
	assert.True(t, ok)
	assert.False(t, messages.HasErrors())
	variable := unit.Declarations[0].(*ast.Variable)
	ptr, ok := variable.VarType.(*ast.TypeUnary)
	assert.True(t, ok)
	assert.Equal(t, ast.TypeUnaryPointer, ptr.Op)
}
