package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/lexer"
	"github.com/sophie-lund/forge/langtools/lex"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

func lexAll(t *testing.T, content string) ([]token.Token, *messaging.Context) {
	t.Helper()
	messages := messaging.NewContext()
	src := source.NewLiteral(content)
	tokens := lex.Driver(messages, src, lexer.Step)
	return tokens, messages
}

func TestStepIdentifiersAndKeywords(t *testing.T) {
	tokens, messages := lexAll(t, "func foo")
	assert.False(t, messages.HasErrors())
	if assert.Len(t, tokens, 2) {
		assert.Equal(t, lexer.KindKeywordFunc, tokens[0].Kind)
		assert.Equal(t, lexer.KindIdentifier, tokens[1].Kind)
		assert.Equal(t, "foo", tokens[1].Value)
	}
}

func TestStepNumberLiterals(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		kind   *token.Kind
		value  string
	}{
		{"bare int", "42", lexer.KindIntegerLiteral, "42"},
		{"suffixed int", "42i64", lexer.KindIntegerLiteral, "42i64"},
		{"bare float", "3.5", lexer.KindFloatLiteral, "3.5"},
		{"suffixed float", "3.5f32", lexer.KindFloatLiteral, "3.5f32"},
		{"int with float suffix", "42f64", lexer.KindFloatLiteral, "42f64"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, messages := lexAll(t, tc.source)
			assert.False(t, messages.HasErrors())
			if assert.Len(t, tokens, 1) {
				assert.Equal(t, tc.kind, tokens[0].Kind)
				assert.Equal(t, tc.value, tokens[0].Value)
			}
		})
	}
}

func TestStepInvalidNumberSuffix(t *testing.T) {
	_, messages := lexAll(t, "42bogus")
	assert.True(t, messages.HasErrors())
}

func TestStepOperatorsLongestMatchFirst(t *testing.T) {
	tokens, messages := lexAll(t, "a **= b")
	assert.False(t, messages.HasErrors())
	if assert.Len(t, tokens, 3) {
		assert.Equal(t, lexer.KindStarStarAssign, tokens[1].Kind)
	}
}

func TestStepCommentsAreDropped(t *testing.T) {
	tokens, messages := lexAll(t, "a // comment\nb /* block */ c")
	assert.False(t, messages.HasErrors())
	assert.Len(t, tokens, 3)
}

func TestStepUnclosedBlockComment(t *testing.T) {
	_, messages := lexAll(t, "/* never closes")
	assert.True(t, messages.HasErrors())
}

func TestStepUnexpectedCharacter(t *testing.T) {
	_, messages := lexAll(t, "@")
	assert.True(t, messages.HasErrors())
}
