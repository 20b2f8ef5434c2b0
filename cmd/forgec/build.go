package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sophie-lund/forge/forgec/compile"
	"github.com/sophie-lund/forge/langtools/core"
	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/reporting"
	"github.com/sophie-lund/forge/langtools/source"
)

// runBuild runs the full pipeline over inputPath and writes an object
// file.
func runBuild(inputPath, output string, noColor bool) int {
	if output == "" {
		output = defaultObjectPath(inputPath)
	}

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
	if err := cg.IntoObjectFile(output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitCodegenError
	}

	if core.TraceEnabled() {
		if info, statErr := os.Stat(output); statErr == nil {
			fmt.Fprintln(os.Stderr, reporting.SummarizeObjectFile(output, info.Size()))
		}
	}

	return ExitSuccess
}

func defaultObjectPath(inputPath string) string {
	if idx := strings.LastIndex(inputPath, "."); idx >= 0 {
		return inputPath[:idx] + ".o"
	}
	return inputPath + ".o"
}

// loadSource reads inputPath from disk and wraps it as a langtools/source.Source
// with a fresh diagnostic sink, the shared entry point every subcommand starts
// from.
func loadSource(inputPath string) (*source.Source, *messaging.Context, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, nil, err
	}
	return source.New(inputPath, string(content)), messaging.NewContext(), nil
}
