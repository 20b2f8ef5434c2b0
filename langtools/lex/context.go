// Package lex is the lexer framework: it drives a
// subclass-provided step function over a grapheme-cluster stream and
// collects whatever tokens that step chooses to emit.
package lex

import (
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

// Context is handed to a Step function on every call. It exposes the
// grapheme-cluster stream plus current location tracking (line/column/offset,
// with LF incrementing line and resetting column) and an Emit method for
// producing tokens.
type Context struct {
	Messages *messaging.Context

	source   *source.Source
	reader   *graphemeReader
	location source.Location
	tokens   []token.Token
}

// NewContext builds a Context over src, ready to lex from its first
// grapheme cluster.
func NewContext(messages *messaging.Context, src *source.Source) *Context {
	return &Context{
		Messages: messages,
		source:   src,
		reader:   newGraphemeReader(src.Content.Units()),
		location: source.Location{Source: src, Line: 1, Column: 1, Offset: 0},
	}
}

// AreMoreGraphemeClusters reports whether input remains.
func (c *Context) AreMoreGraphemeClusters() bool {
	return c.reader.areMore()
}

// Peek returns the next grapheme cluster without consuming it.
func (c *Context) Peek() (string, bool) {
	return c.reader.peekNext()
}

// PeekAt returns the grapheme cluster lookaheadOffset clusters past the
// current position without consuming anything, by re-walking the stream.
// Forge-specific lookahead (e.g. distinguishing "/" from "//" and "/*") uses
// this instead of a second cursor.
func (c *Context) PeekAt(lookahead int) (string, bool) {
	save := *c.reader
	defer func() { *c.reader = save }()

	var result string
	var ok bool
	for i := 0; i <= lookahead; i++ {
		result, ok = c.reader.readNext()
		if !ok {
			return "", false
		}
	}
	return result, ok
}

// Read consumes and returns the next grapheme cluster, updating the current
// location: LF increments the line and resets the column; anything else
// advances the column by one.
func (c *Context) Read() (string, bool) {
	cluster, ok := c.reader.readNext()
	if !ok {
		return "", false
	}

	if cluster == "\n" {
		c.location = source.Location{
			Source: c.source,
			Line:   c.location.Line + 1,
			Column: 1,
			Offset: c.reader.offsetUnits(),
		}
	} else {
		c.location = source.Location{
			Source: c.source,
			Line:   c.location.Line,
			Column: c.location.Column + 1,
			Offset: c.reader.offsetUnits(),
		}
	}

	return cluster, true
}

// CurrentLocation returns the location of the next unread grapheme cluster.
func (c *Context) CurrentLocation() source.Location {
	return c.location
}

// Emit appends a token to the output stream. Whitespace and other
// non-significant spans may simply be consumed via Read without a matching
// Emit call.
func (c *Context) Emit(kind *token.Kind, rng source.Range, value string) {
	c.tokens = append(c.tokens, token.New(kind, rng, value))
}

// Error reports a lex-time diagnostic at rng with severity >= error. Lexing
// continues afterward so multiple errors can surface in one run.
func (c *Context) Error(rng source.Range, code, text string) {
	c.Messages.Emit(messaging.NewWithCode(rng, messaging.SeverityError, code, text))
}

// takeTokens returns the accumulated token stream. Called once, by Driver,
// after lexing completes.
func (c *Context) takeTokens() []token.Token {
	return c.tokens
}
