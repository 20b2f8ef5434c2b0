// Package codegen is the target-independent half of code generation: it
// owns the in-memory LLVM module (via github.com/llir/llvm, which only ever
// builds IR in memory) and the two ways of turning that module into
// something runnable -- an object file on disk, or an in-process JIT
// binding -- both of which shell out to the host's clang, matching how
// langtools/core.Init anticipates this package needing a working host
// toolchain on PATH.
package codegen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"

	"github.com/sophie-lund/forge/langtools/core"
)

// Context owns a single LLVM module under construction. A Context is
// consumed exactly once, by either IntoObjectFile or IntoJIT.
type Context struct {
	Module *ir.Module
}

// NewContext creates an empty module named after the translation unit it
// will hold the generated code for.
func NewContext(moduleName string) *Context {
	core.Assert(core.IsInitialized(), "codegen.NewContext called before core.Init")

	m := ir.NewModule()
	m.SourceFilename = moduleName

	return &Context{Module: m}
}

// String renders the module's textual LLVM IR, mainly useful for tests and
// `forgec build --emit-ir`-style debugging.
func (c *Context) String() string {
	return c.Module.String()
}

// IntoObjectFile lowers the module to a native object file at path by
// writing its IR to a temporary directory and shelling out to clang on the
// host's default target (the same temp-dir-then-clang steps IntoJIT uses
// to build its shared library).
func (c *Context) IntoObjectFile(path string) error {
	triple, err := hostTargetTriple()
	if err != nil {
		return wrapError(ErrorUnableToFindTargetTriple, err)
	}

	tmpDir, irPath, err := c.writeIRToTempFile()
	if err != nil {
		return wrapError(ErrorUnableToOpenObjectFile, err)
	}
	defer os.RemoveAll(tmpDir)

	if err := runClang("-target", triple, "-Wno-override-module", "-c", irPath, "-o", path); err != nil {
		if strings.Contains(triple, "wasm") {
			return wrapError(ErrorTargetDoesNotSupportObjectFiles, err)
		}
		return wrapError(ErrorUnableToCreateTargetMachine, err)
	}

	return nil
}

// runClang shells out to the host's clang, forwarding its stdout and stderr
// to this process's own.
func runClang(args ...string) error {
	cmd := exec.Command("clang", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (c *Context) writeIRToTempFile() (tmpDir, irPath string, err error) {
	tmpDir, err = os.MkdirTemp("", "forgec-codegen-*")
	if err != nil {
		return "", "", fmt.Errorf("creating codegen temp dir: %w", err)
	}

	irPath = filepath.Join(tmpDir, "module.ll")
	if err := os.WriteFile(irPath, []byte(c.Module.String()), 0o644); err != nil {
		os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("writing module IR: %w", err)
	}

	return tmpDir, irPath, nil
}

// hostTargetTriple asks clang for the triple it would target by default,
// rather than hard-coding one, so the resulting object file always matches
// the machine forgec is running on.
func hostTargetTriple() (string, error) {
	out, err := exec.Command("clang", "-dumpmachine").Output()
	if err != nil {
		return "", fmt.Errorf("running clang -dumpmachine: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
