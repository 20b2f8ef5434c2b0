package codegen_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/forgec/compile"
	langcodegen "github.com/sophie-lund/forge/langtools/codegen"
	"github.com/sophie-lund/forge/langtools/core"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/source"
)

func TestMain(m *testing.M) {
	core.Init()
	os.Exit(m.Run())
}

func jitCompile(t *testing.T, src string) *langcodegen.JIT {
	t.Helper()

	messages := messaging.NewContext()
	unit := compile.Analyze(messages, source.NewLiteral(src))
	if !assert.False(t, messages.HasErrors(), "unexpected analysis errors: %v", messages.Messages()) {
		t.FailNow()
	}

	cg := compile.Codegen(unit)

	jit, err := cg.IntoJIT()
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	t.Cleanup(func() { _ = jit.Close() })

	return jit
}

// TestArithmeticWithImplicitWidening checks that an i8 operand is
// sign-extended to i32 before the add.
func TestArithmeticWithImplicitWidening(t *testing.T) {
	jit := jitCompile(t, `
		func f(a: i8, b: i32) -> i32 {
			return a + b;
		}
	`)

	fn, ok := langcodegen.TryLookupFunction[func(int8, int32) int32](jit, "f")
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, int32(0), fn(0, 0))
	assert.Equal(t, int32(3), fn(1, 2))
}

// TestControlFlowWithLocals branches on a comparison of two locals.
func TestControlFlowWithLocals(t *testing.T) {
	jit := jitCompile(t, `
		func f() -> i32 {
			let x: i32 = 0;
			let y: i32 = 5;
			if x < y {
				return 1;
			} else {
				return 2;
			}
		}
	`)

	fn, ok := langcodegen.TryLookupFunction[func() int32](jit, "f")
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, int32(1), fn())
}

// TestParameterDrivenBranch branches on a comparison against a parameter.
func TestParameterDrivenBranch(t *testing.T) {
	jit := jitCompile(t, `
		func f(y: i32) -> i32 {
			let x: i32 = 0;
			if x < y {
				return 1;
			} else {
				return 2;
			}
		}
	`)

	fn, ok := langcodegen.TryLookupFunction[func(int32) int32](jit, "f")
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, int32(1), fn(5))
	assert.Equal(t, int32(1), fn(1))
	assert.Equal(t, int32(2), fn(0))
	assert.Equal(t, int32(2), fn(-5))
}

// TestEvenDetectionReadableForm checks evenness via the modulo form.
func TestEvenDetectionReadableForm(t *testing.T) {
	jit := jitCompile(t, `
		func f(a: i32) -> bool {
			return a % 2 == 0;
		}
	`)

	fn, ok := langcodegen.TryLookupFunction[func(int32) bool](jit, "f")
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, true, fn(0))
	assert.Equal(t, false, fn(1))
	assert.Equal(t, true, fn(2))
	assert.Equal(t, false, fn(3))
}

// TestEvenDetectionBitwiseForm checks evenness via the bitwise form. `&`
// binds tighter than `==`, so this parses as `(a & 1) == 0` -- the same
// observable results as the modulo form.
func TestEvenDetectionBitwiseForm(t *testing.T) {
	jit := jitCompile(t, `
		func f(a: i32) -> bool {
			return a & 1 == 0;
		}
	`)

	fn, ok := langcodegen.TryLookupFunction[func(int32) bool](jit, "f")
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, true, fn(0))
	assert.Equal(t, false, fn(1))
	assert.Equal(t, true, fn(2))
	assert.Equal(t, false, fn(3))
}

// TestMultiplicationOverFloat32 checks that f32 multiplication matches
// IEEE 754 single-precision results bit for bit.
func TestMultiplicationOverFloat32(t *testing.T) {
	jit := jitCompile(t, `
		func f(a: f32, b: f32) -> f32 {
			return a * b;
		}
	`)

	fn, ok := langcodegen.TryLookupFunction[func(float32, float32) float32](jit, "f")
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, float32(2.5)*float32(4), fn(2.5, 4))
	assert.Equal(t, float32(-1.5)*float32(3), fn(-1.5, 3))
}
