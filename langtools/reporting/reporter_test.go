package reporting_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/reporting"
	"github.com/sophie-lund/forge/langtools/source"
)

func TestReportOrdersBySeverityThenOffset(t *testing.T) {
	content := "let x: i32 = 1;\nlet y: i32 = 2;\n"
	src := source.NewLiteral(content)
	ctx := messaging.NewContext()

	locLine2 := src.LocationAt(strings.Index(content, "y"))
	locLine1 := src.LocationAt(strings.Index(content, "x"))

	ctx.Emit(messaging.NewWithCode(source.At(locLine2), messaging.SeverityWarning, "dead-code", "warning on line 2"))
	ctx.Emit(messaging.NewWithCode(source.At(locLine1), messaging.SeverityError, "undeclared-symbol", "error on line 1"))

	var buf bytes.Buffer
	reporting.Report(&buf, ctx, reporting.Options{DisableColor: true})

	out := buf.String()

	errIdx := indexOf(out, "error on line 1")
	warnIdx := indexOf(out, "warning on line 2")

	assert.GreaterOrEqual(t, errIdx, 0)
	assert.GreaterOrEqual(t, warnIdx, 0)
	assert.Less(t, errIdx, warnIdx, "higher severity must render first regardless of source offset")
}

func TestReportRendersSourceSampleWithUnderline(t *testing.T) {
	content := "func f() -> i32 {\n    return x;\n}\n"
	src := source.NewLiteral(content)
	ctx := messaging.NewContext()

	loc := src.LocationAt(strings.LastIndex(content, "x"))
	ctx.Emit(messaging.NewWithCode(source.At(loc), messaging.SeverityError, "undeclared-symbol", `undeclared symbol "x"`))

	var buf bytes.Buffer
	reporting.Report(&buf, ctx, reporting.Options{DisableColor: true})

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "[undeclared-symbol]")
	assert.Contains(t, out, "return x;")
	assert.Contains(t, out, "^")
}

func TestReportWithNoLocationSkipsSourceSample(t *testing.T) {
	ctx := messaging.NewContext()
	ctx.Emit(messaging.New(source.Range{}, messaging.SeverityNote, "no location here"))

	var buf bytes.Buffer
	reporting.Report(&buf, ctx, reporting.Options{DisableColor: true})

	assert.Equal(t, "NOTE: no location here\n", buf.String())
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
