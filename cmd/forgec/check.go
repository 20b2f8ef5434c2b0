package main

import (
	"fmt"
	"os"

	"github.com/sophie-lund/forge/forgec/compile"
	"github.com/sophie-lund/forge/langtools/reporting"
)

// runCheck runs only lexing, parsing, and semantic analysis over inputPath
// and prints diagnostics. It never touches codegen, so it needs no host
// toolchain on PATH.
func runCheck(inputPath string, noColor bool) int {
	src, messages, err := loadSource(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsageError
	}

	compile.Analyze(messages, src)
	reporting.Report(os.Stderr, messages, reporting.Options{DisableColor: noColor})

	if messages.HasErrors() {
		return ExitCompileError
	}
	return ExitSuccess
}
