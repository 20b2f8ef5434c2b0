package sema

import (
	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/pass"
	"github.com/sophie-lund/forge/langtools/scope"
)

// Analyze runs the full semantic-analysis pipeline over unit: symbol
// resolution, type resolution (with implicit-cast insertion), type
// validation, and control-flow validation, in that order. Each stage is
// its own full traversal rather than one pass with four handlers, since a
// later stage depends on every node in the tree having finished the
// earlier one -- type resolution cannot run on a call expression before
// symbol resolution has bound its callee anywhere in the unit, not just in
// the nodes visited so far.
//
// Analyze stops and returns the partially analyzed unit as soon as a stage
// reports an error, so that e.g. type resolution never runs against a tree
// with unresolved symbols.
func Analyze(messages *messaging.Context, unit *ast.TranslationUnit) *ast.TranslationUnit {
	stages := []func(*messaging.Context, *ast.TranslationUnit) *ast.TranslationUnit{
		runSymbolResolution,
		runTypeResolution,
		runTypeValidation,
		runControlFlowValidation,
	}

	for _, stage := range stages {
		unit = stage(messages, unit)
		if messages.HasErrors() {
			break
		}
	}

	return unit
}

func runSymbolResolution(messages *messaging.Context, unit *ast.TranslationUnit) *ast.TranslationUnit {
	p := pass.New(messages)
	p.AddHandler(scope.NewHandler(messages, scope.DefaultOptions()))
	return p.Run(unit).(*ast.TranslationUnit)
}

func runTypeResolution(messages *messaging.Context, unit *ast.TranslationUnit) *ast.TranslationUnit {
	p := pass.New(messages)
	p.AddHandler(NewTypeResolutionHandler(messages))
	return p.Run(unit).(*ast.TranslationUnit)
}

func runTypeValidation(messages *messaging.Context, unit *ast.TranslationUnit) *ast.TranslationUnit {
	p := pass.New(messages)
	p.AddHandler(NewTypeValidationHandler(messages))
	return p.Run(unit).(*ast.TranslationUnit)
}

func runControlFlowValidation(messages *messaging.Context, unit *ast.TranslationUnit) *ast.TranslationUnit {
	p := pass.New(messages)
	p.AddHandler(NewControlFlowHandler(messages))
	return p.Run(unit).(*ast.TranslationUnit)
}
