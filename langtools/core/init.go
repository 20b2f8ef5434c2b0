package core

import "sync"

var (
	initOnce    sync.Once
	initialized bool
	initMu      sync.Mutex
)

// Init performs process-wide setup that must happen exactly once before any
// compilation. github.com/llir/llvm needs no target registration since it
// only ever builds IR in memory, so Init itself only records that setup has
// happened; it does not look for a host toolchain. langtools/codegen
// asserts that Init has run before it creates a module, and a missing
// clang surfaces later as a codegen.Error from object-file emission or JIT
// creation.
//
// Init panics if called more than once; callers that may run it from more
// than one entry point should guard with IsInitialized.
func Init() {
	initMu.Lock()
	defer initMu.Unlock()

	Assert(!initialized, "core.Init called more than once")

	initOnce.Do(func() {
		initialized = true
	})
}

// IsInitialized reports whether Init has run.
func IsInitialized() bool {
	initMu.Lock()
	defer initMu.Unlock()
	return initialized
}

// Shutdown reverses Init. It must be called at most once, and only after
// Init has succeeded.
func Shutdown() {
	initMu.Lock()
	defer initMu.Unlock()

	Assert(initialized, "core.Shutdown called without a matching core.Init")
	initialized = false
}
