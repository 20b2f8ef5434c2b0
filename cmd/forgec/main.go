/*
Forgec compiles Forge source files to native object code, runs them
in-process via a JIT, or checks them for errors without generating code.

Usage:

	forgec build <file> -o <obj>
	forgec run <file>
	forgec check <file>

The flags are:

	-o, --output FILE
		Destination path for the object file. Only used by `build`.
		Defaults to the input file's name with its extension replaced by ".o".

	--no-color
		Disable colorized severity tags in diagnostic output, e.g. for piping
		to a file or a CI log that doesn't render ANSI escapes.

Exit codes: 0 on success; non-zero if any ERROR/FATAL-ERROR diagnostic was
emitted, or if the host environment could not produce an object file or JIT.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/sophie-lund/forge/langtools/core"
)

const (
	// ExitSuccess indicates every requested stage completed with no errors.
	ExitSuccess = iota

	// ExitUsageError indicates the command line itself was malformed (no
	// subcommand, no input file, unknown subcommand).
	ExitUsageError

	// ExitCompileError indicates the pipeline emitted an ERROR/FATAL-ERROR
	// diagnostic during lexing, parsing, or semantic analysis.
	ExitCompileError

	// ExitCodegenError indicates a host-environment failure detected after
	// semantic analysis: no target triple, no object-file writer, no JIT.
	ExitCodegenError
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitUsageError
	}

	subcommand := args[0]
	flags := pflag.NewFlagSet(subcommand, pflag.ContinueOnError)
	output := flags.StringP("output", "o", "", "destination path for the object file (build only)")
	noColor := flags.Bool("no-color", false, "disable colorized severity tags")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsageError
	}

	positional := flags.Args()
	if len(positional) != 1 {
		printUsage()
		return ExitUsageError
	}
	inputPath := positional[0]

	core.Init()
	defer core.Shutdown()

	switch subcommand {
	case "build":
		return runBuild(inputPath, *output, *noColor)
	case "run":
		return runRun(inputPath, *noColor)
	case "check":
		return runCheck(inputPath, *noColor)
	default:
		printUsage()
		return ExitUsageError
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: forgec <build|run|check> <file> [flags]")
	pflag.PrintDefaults()
}
