// Package core contains process-wide plumbing shared by every other langtools
// package: one-shot initialization, assertion helpers for programming errors,
// and a tracing facility gated by the TRACE environment variable.
package core

import "fmt"

// Assert panics if cond is false. It is reserved for programming errors --
// invariant violations that indicate a bug in the compiler itself, never for
// conditions that can be triggered by malformed user input. Those surface
// through a messaging.MessageContext instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

// Assertf is an alias of Assert kept for call sites that read more naturally
// with an explicit "f" suffix next to a format string.
func Assertf(cond bool, format string, args ...any) {
	Assert(cond, format, args...)
}

// Unreachable panics unconditionally. Use it in the default arm of a switch
// over a closed enumeration (NodeKind, TokenKind, operator, ...) where every
// case is expected to be handled explicitly.
func Unreachable(format string, args ...any) {
	panic(fmt.Sprintf("unreachable: "+format, args...))
}
