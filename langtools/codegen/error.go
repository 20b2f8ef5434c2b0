package codegen

import "fmt"

// ErrorType discriminates the ways a Context can fail to become an object
// file or a JIT. These are host-environment failures detected after semantic
// analysis has already succeeded, not user-facing diagnostics, so they
// surface as typed Go errors rather than through a messaging.Context.
type ErrorType int

const (
	// ErrorUnableToFindTargetTriple means the host's default target triple
	// could not be determined (no usable clang on PATH).
	ErrorUnableToFindTargetTriple ErrorType = iota

	// ErrorUnableToCreateTargetMachine means the triple was found but the
	// backend could not be configured to emit code for it.
	ErrorUnableToCreateTargetMachine

	// ErrorUnableToOpenObjectFile means the destination path could not be
	// created or written.
	ErrorUnableToOpenObjectFile

	// ErrorTargetDoesNotSupportObjectFiles means the host triple is one this
	// backend cannot emit a native object file for (e.g. a wasm target).
	ErrorTargetDoesNotSupportObjectFiles

	// ErrorUnableToCreateJIT means the module compiled but could not be
	// loaded back in-process for execution.
	ErrorUnableToCreateJIT
)

func (t ErrorType) String() string {
	switch t {
	case ErrorUnableToFindTargetTriple:
		return "unable-to-find-target-triple"
	case ErrorUnableToCreateTargetMachine:
		return "unable-to-create-target-machine"
	case ErrorUnableToOpenObjectFile:
		return "unable-to-open-object-file"
	case ErrorTargetDoesNotSupportObjectFiles:
		return "target-does-not-support-object-files"
	case ErrorUnableToCreateJIT:
		return "unable-to-create-JIT"
	default:
		return "<unknown codegen error>"
	}
}

// Error is returned by Context.IntoObjectFile and Context.IntoJIT. It
// carries a stable Type alongside a human-readable Message so a caller (the
// CLI's exit-code mapping, or a test) can switch on the failure kind without
// string-matching.
type Error struct {
	Type    ErrorType
	Message string
	wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

func newError(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

func wrapError(t ErrorType, wrapped error) *Error {
	return &Error{Type: t, Message: wrapped.Error(), wrapped: wrapped}
}
