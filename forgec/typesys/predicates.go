// Package typesys implements the type-system logic: the predicates,
// casting-mode table, and arithmetic-containing-type computation that
// forgec/sema's type-resolution and validation passes drive the syntax tree
// with.
package typesys

import "github.com/sophie-lund/forge/forgec/ast"

// underlyingType unwraps a TypeSymbol down through its TypeAlias chain to
// the representational type underneath. It unwraps regardless of an
// alias's Explicit flag: Explicit only changes casting legality between the
// alias and its aliased type (see GetCastingMode), it does not change what
// kind of value the alias actually holds at runtime, so every predicate
// below needs to see through it to answer questions like "is this an
// integer" at all.
func underlyingType(t ast.Type) ast.Type {
	symbol, ok := t.(*ast.TypeSymbol)
	if !ok {
		return t
	}
	target, ok := symbol.ResolvedSymbol()
	if !ok {
		return t
	}
	alias, ok := target.(*ast.TypeAlias)
	if !ok {
		return t
	}
	return underlyingType(alias.Aliased)
}

// IsVoid reports whether t is the void basic type.
func IsVoid(t ast.Type) bool {
	b, ok := underlyingType(t).(*ast.TypeBasic)
	return ok && b.BasicKind == ast.BasicVoid
}

// IsBool reports whether t is the bool basic type.
func IsBool(t ast.Type) bool {
	b, ok := underlyingType(t).(*ast.TypeBasic)
	return ok && b.BasicKind == ast.BasicBool
}

// IsInteger reports whether t is any integer type: isize/usize or a
// WithBitWidth signed/unsigned integer.
func IsInteger(t ast.Type) bool {
	switch v := underlyingType(t).(type) {
	case *ast.TypeBasic:
		return v.BasicKind == ast.BasicISize || v.BasicKind == ast.BasicUSize
	case *ast.TypeWithBitWidth:
		return v.NumericKind == ast.NumericSignedInt || v.NumericKind == ast.NumericUnsignedInt
	default:
		return false
	}
}

// IsIntegerSigned reports whether t is a signed integer type. The second
// return value is false if t is not an integer type at all.
func IsIntegerSigned(t ast.Type) (signed bool, ok bool) {
	switch v := underlyingType(t).(type) {
	case *ast.TypeBasic:
		switch v.BasicKind {
		case ast.BasicISize:
			return true, true
		case ast.BasicUSize:
			return false, true
		default:
			return false, false
		}
	case *ast.TypeWithBitWidth:
		switch v.NumericKind {
		case ast.NumericSignedInt:
			return true, true
		case ast.NumericUnsignedInt:
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

// IsFloat reports whether t is f32 or f64.
func IsFloat(t ast.Type) bool {
	v, ok := underlyingType(t).(*ast.TypeWithBitWidth)
	return ok && v.NumericKind == ast.NumericFloat
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t ast.Type) bool {
	v, ok := underlyingType(t).(*ast.TypeUnary)
	return ok && v.Op == ast.TypeUnaryPointer
}

// TryGetPointerElementType returns the pointee type of a pointer type.
func TryGetPointerElementType(t ast.Type) (ast.Type, bool) {
	v, ok := underlyingType(t).(*ast.TypeUnary)
	if !ok || v.Op != ast.TypeUnaryPointer {
		return nil, false
	}
	return v.Operand, true
}

// bitWidth returns the bit width of an integer or float type, and false for
// any other type. isize/usize report the platform pointer width.
func bitWidth(t ast.Type) (int, bool) {
	switch v := underlyingType(t).(type) {
	case *ast.TypeBasic:
		switch v.BasicKind {
		case ast.BasicISize, ast.BasicUSize:
			return PlatformPointerBitWidth, true
		default:
			return 0, false
		}
	case *ast.TypeWithBitWidth:
		return v.BitWidth, true
	default:
		return 0, false
	}
}

// PlatformPointerBitWidth is the width substituted for isize/usize. Forge
// targets 64-bit hosts exclusively for now; a cross-compiling forgec would
// need this to vary with the codegen target triple.
const PlatformPointerBitWidth = 64
