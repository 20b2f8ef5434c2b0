package codegen

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// JIT is a live, in-process binding to a module that was compiled to a
// shared library and dlopen'd back in. llir/llvm only ever builds IR in
// memory and ships no execution engine of its own, so "JIT" here means:
// shell out to clang to produce a real shared object (same IntoObjectFile
// path, just `-shared`), then bind to it with the host's dynamic loader.
type JIT struct {
	handle dlHandle
	tmpDir string
}

// IntoJIT compiles the module to a temporary shared library and loads it,
// returning a JIT the caller can look functions up on. The caller must
// Close it when done to remove the temporary library and release the
// dlopen handle.
func (c *Context) IntoJIT() (*JIT, error) {
	triple, err := hostTargetTriple()
	if err != nil {
		return nil, wrapError(ErrorUnableToFindTargetTriple, err)
	}

	tmpDir, irPath, err := c.writeIRToTempFile()
	if err != nil {
		return nil, wrapError(ErrorUnableToCreateJIT, err)
	}

	soPath := filepath.Join(tmpDir, uuid.NewString()+".so")
	if err := compileSharedLibrary(triple, irPath, soPath); err != nil {
		os.RemoveAll(tmpDir)
		return nil, wrapError(ErrorUnableToCreateJIT, err)
	}

	handle, err := dlOpen(soPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, wrapError(ErrorUnableToCreateJIT, err)
	}

	return &JIT{handle: handle, tmpDir: tmpDir}, nil
}

// Close releases the dlopen handle and removes the temporary shared
// library backing it.
func (j *JIT) Close() error {
	defer os.RemoveAll(j.tmpDir)
	return dlClose(j.handle)
}

// TryLookupFunction binds name to a Go function value of type F, or returns
// ok == false if name isn't exported by the module or F isn't one of the
// signatures this JIT knows how to bridge through cgo. F is intentionally
// restricted to a closed set of plain scalar signatures -- extending it
// means adding a matching C trampoline in jit_unix.go, since cgo can only
// call through a statically declared C function type.
func TryLookupFunction[F any](j *JIT, name string) (F, bool) {
	var zero F

	sym, err := dlSym(j.handle, name)
	if err != nil {
		return zero, false
	}

	fn, ok := bindSymbol[F](sym)
	if !ok {
		return zero, false
	}

	return fn, true
}

func compileSharedLibrary(triple, irPath, soPath string) error {
	return runClang("-target", triple, "-shared", "-fPIC", "-Wno-override-module", irPath, "-o", soPath)
}
