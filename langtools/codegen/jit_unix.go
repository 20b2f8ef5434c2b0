//go:build linux || darwin

package codegen

/*
#cgo linux LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

// Trampolines, one per signature TryLookupFunction supports. cgo can only
// call through a statically declared C function type, so a dlsym'd void*
// needs one of these to become callable at all -- there's no way to call an
// arbitrary function pointer generically from Go.

typedef int32_t (*forge_fn_i8_i32_to_i32)(int8_t, int32_t);
static int32_t forge_call_i8_i32_to_i32(void *fn, int8_t a, int32_t b) {
	return ((forge_fn_i8_i32_to_i32)fn)(a, b);
}

typedef int32_t (*forge_fn_i32_i32_to_i32)(int32_t, int32_t);
static int32_t forge_call_i32_i32_to_i32(void *fn, int32_t a, int32_t b) {
	return ((forge_fn_i32_i32_to_i32)fn)(a, b);
}

typedef int32_t (*forge_fn_void_to_i32)(void);
static int32_t forge_call_void_to_i32(void *fn) {
	return ((forge_fn_void_to_i32)fn)();
}

typedef int32_t (*forge_fn_i32_to_i32)(int32_t);
static int32_t forge_call_i32_to_i32(void *fn, int32_t a) {
	return ((forge_fn_i32_to_i32)fn)(a);
}

typedef int8_t (*forge_fn_i32_to_bool)(int32_t);
static int8_t forge_call_i32_to_bool(void *fn, int32_t a) {
	return ((forge_fn_i32_to_bool)fn)(a);
}

typedef int8_t (*forge_fn_void_to_bool)(void);
static int8_t forge_call_void_to_bool(void *fn) {
	return ((forge_fn_void_to_bool)fn)();
}

typedef float (*forge_fn_f32_f32_to_f32)(float, float);
static float forge_call_f32_f32_to_f32(void *fn, float a, float b) {
	return ((forge_fn_f32_f32_to_f32)fn)(a, b);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type dlHandle unsafe.Pointer

func dlOpen(path string) (dlHandle, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	handle := C.dlopen(cPath, C.RTLD_NOW)
	if handle == nil {
		return nil, fmt.Errorf("dlopen %s: %s", path, C.GoString(C.dlerror()))
	}
	return dlHandle(handle), nil
}

func dlClose(h dlHandle) error {
	if C.dlclose(unsafe.Pointer(h)) != 0 {
		return fmt.Errorf("dlclose: %s", C.GoString(C.dlerror()))
	}
	return nil
}

func dlSym(h dlHandle, name string) (unsafe.Pointer, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	C.dlerror() // clear any pending error
	sym := C.dlsym(unsafe.Pointer(h), cName)
	if sym == nil {
		if errMsg := C.dlerror(); errMsg != nil {
			return nil, fmt.Errorf("dlsym %s: %s", name, C.GoString(errMsg))
		}
	}
	return sym, nil
}

// bindSymbol dispatches on F's concrete type to pick the matching
// trampoline. Generics can't switch on a type parameter directly, so this
// switches on a zero value of F boxed as `any` instead.
func bindSymbol[F any](sym unsafe.Pointer) (F, bool) {
	var zero F

	switch any(zero).(type) {
	case func(int8, int32) int32:
		fn := func(a int8, b int32) int32 {
			return int32(C.forge_call_i8_i32_to_i32(sym, C.int8_t(a), C.int32_t(b)))
		}
		return any(fn).(F), true

	case func(int32, int32) int32:
		fn := func(a, b int32) int32 {
			return int32(C.forge_call_i32_i32_to_i32(sym, C.int32_t(a), C.int32_t(b)))
		}
		return any(fn).(F), true

	case func() int32:
		fn := func() int32 {
			return int32(C.forge_call_void_to_i32(sym))
		}
		return any(fn).(F), true

	case func(int32) int32:
		fn := func(a int32) int32 {
			return int32(C.forge_call_i32_to_i32(sym, C.int32_t(a)))
		}
		return any(fn).(F), true

	case func(int32) bool:
		fn := func(a int32) bool {
			return C.forge_call_i32_to_bool(sym, C.int32_t(a)) != 0
		}
		return any(fn).(F), true

	case func() bool:
		fn := func() bool {
			return C.forge_call_void_to_bool(sym) != 0
		}
		return any(fn).(F), true

	case func(float32, float32) float32:
		fn := func(a, b float32) float32 {
			return float32(C.forge_call_f32_f32_to_f32(sym, C.float(a), C.float(b)))
		}
		return any(fn).(F), true

	default:
		return zero, false
	}
}
