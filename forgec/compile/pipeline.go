// Package compile wires together the lexer, parser, semantic passes, and
// codegen into a single unidirectional chain: source text to either a
// validated tree (for `forgec check`), an object file (`forgec build`), or
// a live JIT (`forgec run`). cmd/forgec and forgec/testharness are both
// thin callers of this package so the two never drift out of sync on how
// the pipeline is actually sequenced.
package compile

import (
	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/codegen"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/forgec/parser"
	"github.com/sophie-lund/forge/forgec/sema"
	langcodegen "github.com/sophie-lund/forge/langtools/codegen"
	"github.com/sophie-lund/forge/langtools/lex"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/parse"
	"github.com/sophie-lund/forge/langtools/source"
)

// Analyze runs the pipeline through lexing, parsing, and every semantic
// pass, stopping early if an earlier stage left an error in messages. It
// never enters codegen; callers that need an LLVM module call Codegen
// separately once they've confirmed messages.HasErrors() is false.
func Analyze(messages *messaging.Context, src *source.Source) *ast.TranslationUnit {
	unit, parsedOK := Parse(messages, src)
	if !parsedOK || messages.HasErrors() {
		return unit
	}

	return sema.Analyze(messages, unit)
}

// Parse runs lexing and parsing only, without entering semantic analysis.
// If lexing reports an error, Parse does not parse at all and returns a nil
// unit with parsedOK false. Otherwise parsedOK is false iff the parser hit
// an unrecoverable failure: the returned unit is still the partial tree
// built so far, per
// ParseTranslationUnit's own contract, so callers that only care about e.g.
// the declarations seen before the failure can still inspect it.
func Parse(messages *messaging.Context, src *source.Source) (unit *ast.TranslationUnit, parsedOK bool) {
	tokens := lex.Driver(messages, src, lexer.Step)
	if messages.HasErrors() {
		return nil, false
	}

	ctx := parse.NewContext(messages, tokens)
	return parser.ParseTranslationUnit(ctx, src.Path)
}

// Codegen lowers an already-analyzed, error-free unit to a fresh
// langtools/codegen.Context named after the unit's source path. Callers
// must have confirmed messages.HasErrors() is false before calling this --
// codegen treats that as an established precondition and panics via
// core.Assert if violated.
func Codegen(unit *ast.TranslationUnit) *langcodegen.Context {
	cg := langcodegen.NewContext(unit.Path)
	codegen.Lower(unit, cg)
	return cg
}
