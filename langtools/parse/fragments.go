package parse

import (
	"fmt"
	"strings"

	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

// TokenByKind consumes and returns the next token if it has the given kind,
// or leaves the cursor untouched and returns (zero, false) otherwise. This is
// the base combinator every other parsing function in forgec/parser is built
// from.
func TokenByKind(ctx *Context, kind *token.Kind) (token.Token, bool) {
	if !ctx.AreMoreTokens() {
		return token.Token{}, false
	}

	if ctx.PeekToken().Kind.Equal(kind) {
		return ctx.ReadToken(), true
	}

	return token.Token{}, false
}

// ExpectTokenByKind is TokenByKind, but on failure it emits an
// "expected {set}" diagnostic naming the single expected kind, at the
// location of whatever token was actually found (or at the end-of-stream
// location if none remains). Call this only once a production has committed
// to requiring this token -- never speculatively.
func ExpectTokenByKind(ctx *Context, kind *token.Kind) (token.Token, bool) {
	if t, ok := TokenByKind(ctx, kind); ok {
		return t, true
	}

	ExpectedError(ctx, []*token.Kind{kind})
	return token.Token{}, false
}

// ExpectedError emits an "expected {set}" diagnostic describing which
// kinds were valid at this point, using the range of the token actually
// found.
func ExpectedError(ctx *Context, expected []*token.Kind) {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.Name()
	}

	if ctx.AreMoreTokens() {
		found := ctx.PeekToken()
		ctx.Error(messaging.NewWithCode(
			found.Range,
			messaging.SeverityError,
			"unexpected-token",
			fmt.Sprintf("expected %s but found %s", strings.Join(names, " or "), found.Kind.Name()),
		))
		return
	}

	ctx.Error(messaging.NewWithCode(
		source.Range{},
		messaging.SeverityError,
		"unexpected-token",
		fmt.Sprintf("expected %s but reached end of input", strings.Join(names, " or ")),
	))
}
