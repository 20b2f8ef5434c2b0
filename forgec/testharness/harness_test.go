package testharness_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/testharness"
	"github.com/sophie-lund/forge/langtools/token"
)

func TestUndeclaredSymbolIsError(t *testing.T) {
	testharness.Run(t, testharness.Options{
		Source: `
			func f() -> i32 {
				return undeclaredThing;
			}
		`,
		ExpectedState: testharness.StateErrorsAfterPasses,
	})
}

func TestReturnValueInVoidFunctionIsError(t *testing.T) {
	testharness.Run(t, testharness.Options{
		Source: `
			func f() {
				return 1;
			}
		`,
		ExpectedState: testharness.StateErrorsAfterPasses,
	})
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	testharness.Run(t, testharness.Options{
		Source: `
			func f() {
				break;
			}
		`,
		ExpectedState: testharness.StateErrorsAfterPasses,
	})
}

func TestUnrecoverableParseFailureOnDanglingKeyword(t *testing.T) {
	testharness.Run(t, testharness.Options{
		Source:        `func`,
		ExpectedState: testharness.StateUnrecoverableParsingFailure,
	})
}

func TestArithmeticWideningAnalyzesCleanly(t *testing.T) {
	testharness.Run(t, testharness.Options{
		Source: `
			func f(a: i8, b: i32) -> i32 {
				return a + b;
			}
		`,
		ExpectedState: testharness.StateFinishedSuccessfully,
	})
}

func TestControlFlowWithLocalsAnalyzesCleanly(t *testing.T) {
	testharness.Run(t, testharness.Options{
		Source: `
			func f() -> i32 {
				let x: i32 = 0;
				let y: i32 = 5;
				if x < y {
					return 1;
				} else {
					return 2;
				}
			}
		`,
		ExpectedState: testharness.StateFinishedSuccessfully,
	})
}

func TestEmptySourceLexesToZeroTokensWithNoErrors(t *testing.T) {
	testharness.Run(t, testharness.Options{
		Source:        "",
		ExpectedState: testharness.StateFinishedSuccessfully,
		OnTokens: func(t *testing.T, tokens []token.Token) {
			assert.Empty(t, tokens)
		},
	})
}
