package core

import (
	"fmt"
	"os"
)

// traceEnabled is computed once from the environment rather than re-read on
// every call.
var traceEnabled = os.Getenv("TRACE") == "true" || os.Getenv("TRACE") == "1"

var traceIndentLevel int

// Trace writes a trace line tagged with name to stderr, indented to the
// current nesting depth, and returns a function that must be deferred to pop
// that nesting level back off. It is a no-op (and the returned func is a
// no-op) unless the TRACE environment variable is "true" or "1".
//
//	defer core.Trace("symbol-resolution-pass")()
func Trace(name string) func() {
	if !traceEnabled {
		return func() {}
	}

	writeTraceLine(name)
	traceIndentLevel++

	return func() {
		traceIndentLevel--
	}
}

// Tracef is Trace with a formatted name.
func Tracef(format string, args ...any) func() {
	return Trace(fmt.Sprintf(format, args...))
}

func writeTraceLine(name string) {
	for i := 0; i < traceIndentLevel; i++ {
		fmt.Fprint(os.Stderr, "  ")
	}
	fmt.Fprintln(os.Stderr, name)
}

// TraceEnabled reports whether tracing output is currently active.
func TraceEnabled() bool {
	return traceEnabled
}
