// Package testharness drives the full forgec pipeline end to end over a
// source fixture and asserts on the stable debug-dump/message-report
// output. Table-driven callers build one Options value per fixture.
package testharness

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/compile"
	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/forgec/sema"
	"github.com/sophie-lund/forge/langtools/codegen"
	"github.com/sophie-lund/forge/langtools/lex"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/reporting"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
	"github.com/sophie-lund/forge/langtools/tree"
)

// State is how far through the pipeline a fixture is expected to get,
// ordered furthest-through-compilation first.
type State int

const (
	// StateFinishedSuccessfully means lexing, parsing, every semantic pass,
	// and (if requested) codegen all completed with zero errors.
	StateFinishedSuccessfully State = iota

	// StateErrorsAfterPasses means parsing succeeded but semantic analysis
	// left at least one error in the message context.
	StateErrorsAfterPasses

	// StateUnrecoverableParsingFailure means the parser could not produce a
	// complete tree (ParseTranslationUnit returned ok == false).
	StateUnrecoverableParsingFailure
)

// Options is one functional-test fixture: a source string, the pipeline
// stage it is expected to reach, and optional hooks/golden strings to check
// at each stage it does reach.
type Options struct {
	Source string

	ExpectedState State

	// OnTokens, if set, is called with the token stream once lexing
	// completes (even if a later stage fails).
	OnTokens func(t *testing.T, tokens []token.Token)

	// OnSyntaxTree, if set, is called with the analyzed tree once semantic
	// analysis finishes with no errors. It is not called when a run stops
	// with errors or at a parse failure.
	OnSyntaxTree func(t *testing.T, unit *ast.TranslationUnit)

	// ExpectedSyntaxTreeDebug, if non-empty, is compared against
	// tree.FormatDebug(unit) once semantic analysis finishes with no errors;
	// it is not compared when a run stops with errors or at a parse failure.
	ExpectedSyntaxTreeDebug string

	// ExpectedMessageReport, if non-empty, is compared against the
	// reporter's rendered output (colors disabled, for deterministic
	// golden comparison) of every message emitted.
	ExpectedMessageReport string

	// OnCodegen, if set, requests that codegen run (only valid alongside
	// StateFinishedSuccessfully) and is called with the resulting context
	// before it is consumed into a JIT.
	OnCodegen func(t *testing.T, cg *codegen.Context)
}

// Run drives the pipeline over opts.Source and asserts every configured
// expectation. It never calls t.Fatal on a mismatch -- like the rest of the
// harness's callers, it uses assert so one fixture can report more than one
// failing expectation per run.
func Run(t *testing.T, opts Options) {
	t.Helper()

	messages := messaging.NewContext()
	src := source.NewLiteral(opts.Source)

	tokens := lex.Driver(messages, src, lexer.Step)
	if opts.OnTokens != nil {
		opts.OnTokens(t, tokens)
	}

	if messages.HasErrors() {
		assert.Equal(t, StateErrorsAfterPasses, opts.ExpectedState, "lexer reported errors")
		reportAndCompare(t, messages, opts)
		return
	}

	unit, parsedOK := compile.Parse(messages, src)

	if !parsedOK {
		assert.Equal(t, StateUnrecoverableParsingFailure, opts.ExpectedState, "parser hit an unrecoverable failure")
		reportAndCompare(t, messages, opts)
		return
	}

	if messages.HasErrors() {
		assert.Equal(t, StateErrorsAfterPasses, opts.ExpectedState, "parser reported errors")
		reportAndCompare(t, messages, opts)
		return
	}

	unit = sema.Analyze(messages, unit)

	if opts.ExpectedState == StateUnrecoverableParsingFailure {
		assert.Fail(t, "parsing succeeded but StateUnrecoverableParsingFailure was expected")
		reportAndCompare(t, messages, opts)
		return
	}

	if opts.ExpectedState == StateErrorsAfterPasses {
		assert.True(t, messages.HasErrors(), "expected semantic errors but none were emitted")
		reportAndCompare(t, messages, opts)
		return
	}

	if !assert.False(t, messages.HasErrors(), "unexpected errors: %v", messages.Messages()) {
		reportAndCompare(t, messages, opts)
		return
	}

	if opts.OnSyntaxTree != nil {
		opts.OnSyntaxTree(t, unit)
	}

	if opts.ExpectedSyntaxTreeDebug != "" {
		assert.Equal(t, opts.ExpectedSyntaxTreeDebug, tree.FormatDebug(unit))
	}

	if opts.OnCodegen != nil {
		cg := compile.Codegen(unit)
		opts.OnCodegen(t, cg)
	}

	reportAndCompare(t, messages, opts)
}

func reportAndCompare(t *testing.T, messages *messaging.Context, opts Options) {
	if opts.ExpectedMessageReport == "" {
		return
	}

	var buf bytes.Buffer
	reporting.Report(&buf, messages, reporting.Options{DisableColor: true})
	assert.Equal(t, opts.ExpectedMessageReport, buf.String())
}
