package compile_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/compile"
	"github.com/sophie-lund/forge/langtools/core"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/source"
)

// TestMain runs core.Init once for the whole package -- tests are this
// package's only entry point into codegen besides the CLI.
func TestMain(m *testing.M) {
	core.Init()
	os.Exit(m.Run())
}

func TestParseReturnsPartialTreeOnUnrecoverableFailure(t *testing.T) {
	messages := messaging.NewContext()
	src := source.NewLiteral("func")

	unit, parsedOK := compile.Parse(messages, src)
	assert.False(t, parsedOK)
	assert.NotNil(t, unit)
	assert.True(t, messages.HasErrors())
}

func TestAnalyzeReturnsCleanTreeForValidProgram(t *testing.T) {
	messages := messaging.NewContext()
	src := source.NewLiteral(`
		func f(a: i32, b: i32) -> i32 {
			return a + b;
		}
	`)

	unit := compile.Analyze(messages, src)
	assert.False(t, messages.HasErrors())
	if assert.NotNil(t, unit) {
		assert.Len(t, unit.Declarations, 1)
		_, ok := unit.Declarations[0].(*ast.Function)
		assert.True(t, ok)
	}
}

func TestCodegenProducesNonEmptyModule(t *testing.T) {
	messages := messaging.NewContext()
	src := source.NewLiteral(`
		func main() -> i32 {
			return 0;
		}
	`)

	unit := compile.Analyze(messages, src)
	if !assert.False(t, messages.HasErrors()) {
		t.FailNow()
	}

	cg := compile.Codegen(unit)
	assert.Contains(t, cg.String(), "main")
}
