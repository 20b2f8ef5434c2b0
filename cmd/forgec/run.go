package main

import (
	"fmt"
	"os"

	"github.com/sophie-lund/forge/forgec/compile"
	"github.com/sophie-lund/forge/langtools/codegen"
	"github.com/sophie-lund/forge/langtools/reporting"
)

// entryPointName is the function forgec looks up and invokes after JITing
// a module.
const entryPointName = "main"

// runRun runs the full pipeline, JITs the result, and invokes the entry
// point. The process exits with the entry
// point's return value when it returns an i32, or 0/1 for a bool-returning
// entry point, matching a Unix exit-code convention.
func runRun(inputPath string, noColor bool) int {
	src, messages, err := loadSource(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsageError
	}

	unit := compile.Analyze(messages, src)
	reporting.Report(os.Stderr, messages, reporting.Options{DisableColor: noColor})
	if unit == nil || messages.HasErrors() {
		return ExitCompileError
	}

	cg := compile.Codegen(unit)

	jit, err := cg.IntoJIT()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitCodegenError
	}
	defer jit.Close()

	if fn, ok := codegen.TryLookupFunction[func() int32](jit, entryPointName); ok {
		return int(fn())
	}

	if fn, ok := codegen.TryLookupFunction[func() bool](jit, entryPointName); ok {
		if fn() {
			return ExitSuccess
		}
		return 1
	}

	fmt.Fprintf(os.Stderr, "no entry point %q with a supported signature (expected `func() -> i32` or `func() -> bool`)\n", entryPointName)
	return ExitUsageError
}
