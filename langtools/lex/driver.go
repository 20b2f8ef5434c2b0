package lex

import (
	"github.com/sophie-lund/forge/langtools/core"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

// Step is provided by a language-specific lexer. It must consume at least
// one grapheme cluster from ctx before returning; the driver treats failing
// to do so as a programming error, not a recoverable condition.
type Step func(ctx *Context)

// Driver runs Step repeatedly over src until its grapheme-cluster stream is
// exhausted, and returns the tokens Step chose to emit via ctx.Emit.
//
//	tokens := lex.Driver(messages, src, lexer.Step)
func Driver(messages *messaging.Context, src *source.Source, step Step) []token.Token {
	defer core.Tracef("lex %s", src.Path)()

	ctx := NewContext(messages, src)

	for ctx.AreMoreGraphemeClusters() {
		before := ctx.reader.offsetUnits()

		step(ctx)

		after := ctx.reader.offsetUnits()
		core.Assert(before != after, "lex step at %s did not consume a grapheme cluster", ctx.CurrentLocation())
	}

	core.Assert(!ctx.AreMoreGraphemeClusters(), "lexer did not consume all grapheme clusters in %s", src.Path)

	return ctx.takeTokens()
}
