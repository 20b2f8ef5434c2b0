// Package parse provides the backtrackable token cursor that both
// forgec's recursive-descent parser and its Pratt-style expression parser
// are built on, plus a handful of combinator helpers shared by parsing
// functions.
package parse

import (
	"github.com/sophie-lund/forge/langtools/core"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/token"
)

// Context wraps a token vector with a cursor supporting Peek/Read/Save/
// Restore. Parsing functions are small combinators that either consume
// tokens and return a node, or restore a saved cursor and return none.
type Context struct {
	Messages *messaging.Context

	tokens []token.Token
	cursor int
}

// NewContext builds a Context over tokens, cursor at position 0.
func NewContext(messages *messaging.Context, tokens []token.Token) *Context {
	return &Context{Messages: messages, tokens: tokens}
}

// AreMoreTokens reports whether the cursor has not yet reached the end of
// the token stream.
func (c *Context) AreMoreTokens() bool {
	return c.cursor < len(c.tokens)
}

// PeekToken returns the next unread token without consuming it.
func (c *Context) PeekToken() token.Token {
	core.Assert(c.AreMoreTokens(), "PeekToken called with no tokens remaining")
	return c.tokens[c.cursor]
}

// PeekTokenAt returns the token `ahead` positions past the cursor (0 is the
// same as PeekToken), or the zero Token and false if that position is past
// the end of the stream. Used for fixed lookahead, e.g. distinguishing a
// compound assignment operator from a plain one.
func (c *Context) PeekTokenAt(ahead int) (token.Token, bool) {
	i := c.cursor + ahead
	if i < 0 || i >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[i], true
}

// ReadToken consumes and returns the next token.
func (c *Context) ReadToken() token.Token {
	core.Assert(c.AreMoreTokens(), "ReadToken called with no tokens remaining")
	t := c.tokens[c.cursor]
	c.cursor++
	return t
}

// SaveCursor returns an opaque cursor position that can later be passed to
// RestoreCursor to backtrack.
func (c *Context) SaveCursor() int {
	return c.cursor
}

// RestoreCursor rewinds the cursor to a position previously returned by
// SaveCursor.
func (c *Context) RestoreCursor(pos int) {
	core.Assert(pos >= 0 && pos <= len(c.tokens), "RestoreCursor given out-of-range position %d", pos)
	c.cursor = pos
}

// Error reports a parse-time diagnostic. Parsing functions call this only
// once they have committed to a production: backtracking paths must
// never emit.
func (c *Context) Error(m messaging.Message) {
	c.Messages.Emit(m)
}
