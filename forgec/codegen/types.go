package codegen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	"github.com/sophie-lund/forge/langtools/core"
)

// lowerType maps a resolved Forge type to its LLVM representation,
// following the lowering table: bool -> i1, void -> void, isize/usize ->
// a platform-width integer, a WithBitWidth type -> iN or float/double,
// a pointer -> an opaque pointer, a structured type -> a named struct with
// fields in declaration order, and a function type -> a pointer to an LLVM
// function type.
func (l *lowerer) lowerType(t ast.Type) types.Type {
	switch v := t.(type) {
	case *ast.TypeBasic:
		return l.lowerBasicType(v)

	case *ast.TypeWithBitWidth:
		return l.lowerBitWidthType(v)

	case *ast.TypeUnary:
		core.Assert(v.Op == ast.TypeUnaryPointer, "unhandled unary type operator %v", v.Op)
		return types.NewPointer(l.lowerType(v.Operand))

	case *ast.TypeSymbol:
		return l.lowerTypeSymbol(v)

	case *ast.TypeFunction:
		return types.NewPointer(l.lowerFuncType(v))

	case *ast.TypeStructured:
		return l.anonymousStructType(v)
	}

	core.Unreachable("unhandled type node kind %T", t)
	return nil
}

func (l *lowerer) lowerBasicType(v *ast.TypeBasic) types.Type {
	switch v.BasicKind {
	case ast.BasicBool:
		return types.I1
	case ast.BasicVoid:
		return types.Void
	case ast.BasicISize, ast.BasicUSize:
		return types.NewInt(typesys.PlatformPointerBitWidth)
	default:
		core.Unreachable("unhandled basic type kind %v", v.BasicKind)
		return nil
	}
}

func (l *lowerer) lowerBitWidthType(v *ast.TypeWithBitWidth) types.Type {
	switch v.NumericKind {
	case ast.NumericSignedInt, ast.NumericUnsignedInt:
		return types.NewInt(uint64(v.BitWidth))
	case ast.NumericFloat:
		switch v.BitWidth {
		case 32:
			return types.Float
		case 64:
			return types.Double
		default:
			core.Unreachable("unsupported float bit width %d", v.BitWidth)
			return nil
		}
	default:
		core.Unreachable("unhandled numeric kind %v", v.NumericKind)
		return nil
	}
}

func (l *lowerer) lowerTypeSymbol(v *ast.TypeSymbol) types.Type {
	target, ok := v.ResolvedSymbol()
	core.Assert(ok, "unresolved type symbol %q reached codegen", v.Name)

	switch d := target.(type) {
	case *ast.TypeAlias:
		return l.lowerType(d.Aliased)
	case *ast.StructuredType:
		st, ok := l.structs[d]
		core.Assert(ok, "structured type %q used before its fields were declared in codegen", d.Name)
		return st
	default:
		core.Unreachable("type symbol %q resolved to unexpected declaration kind %T", v.Name, target)
		return nil
	}
}

func (l *lowerer) lowerFuncType(v *ast.TypeFunction) *types.FuncType {
	argTypes := make([]types.Type, len(v.ArgTypes))
	for i, a := range v.ArgTypes {
		argTypes[i] = l.lowerType(a)
	}
	return types.NewFunc(l.lowerType(v.ReturnType), argTypes...)
}

func (l *lowerer) anonymousStructType(v *ast.TypeStructured) *types.StructType {
	fieldTypes := make([]types.Type, len(v.Members))
	for i, m := range v.Members {
		fieldTypes[i] = l.lowerType(m.VarType)
	}
	return types.NewStruct(fieldTypes...)
}

// structuredTypeOf unwraps t (possibly a symbol reference, possibly through
// a chain of transparent or distinct TypeAlias layers) down to the
// TypeStructured describing its fields, for member-access codegen.
func structuredTypeOf(t ast.Type) *ast.TypeStructured {
	switch v := t.(type) {
	case *ast.TypeStructured:
		return v
	case *ast.TypeSymbol:
		target, ok := v.ResolvedSymbol()
		core.Assert(ok, "unresolved type symbol reached member-access codegen")
		switch d := target.(type) {
		case *ast.StructuredType:
			return d.Fields
		case *ast.TypeAlias:
			return structuredTypeOf(d.Aliased)
		default:
			core.Unreachable("type symbol resolved to non-type-carrying declaration %T", target)
			return nil
		}
	default:
		core.Unreachable("member access on non-structured type %T", t)
		return nil
	}
}

// mustBitWidth returns t's bit width, asserting t is numeric -- for use
// after type validation has already confirmed the cast or operation is
// legal, so a numeric type is guaranteed here.
func mustBitWidth(t ast.Type) int {
	switch v := t.(type) {
	case *ast.TypeBasic:
		core.Assert(v.BasicKind == ast.BasicISize || v.BasicKind == ast.BasicUSize, "mustBitWidth called on non-numeric basic type %v", v.BasicKind)
		return typesys.PlatformPointerBitWidth
	case *ast.TypeWithBitWidth:
		return v.BitWidth
	case *ast.TypeSymbol:
		target, ok := v.ResolvedSymbol()
		core.Assert(ok, "unresolved type symbol reached mustBitWidth")
		alias, ok := target.(*ast.TypeAlias)
		core.Assert(ok, "mustBitWidth called on a type symbol that isn't a type alias")
		return mustBitWidth(alias.Aliased)
	default:
		core.Unreachable("mustBitWidth called on non-numeric type %T", t)
		return 0
	}
}

func isIsizeOrUsizeType(t ast.Type) bool {
	switch v := t.(type) {
	case *ast.TypeBasic:
		return v.BasicKind == ast.BasicISize || v.BasicKind == ast.BasicUSize
	case *ast.TypeSymbol:
		target, ok := v.ResolvedSymbol()
		if !ok {
			return false
		}
		alias, ok := target.(*ast.TypeAlias)
		if !ok {
			return false
		}
		return isIsizeOrUsizeType(alias.Aliased)
	default:
		return false
	}
}
