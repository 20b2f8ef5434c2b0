package typesys

import "github.com/sophie-lund/forge/forgec/ast"

// CastingMode is the three-way legality of converting a value from one type
// to another.
type CastingMode int

const (
	// CastingIllegal means the conversion is never allowed, e.g. any
	// conversion touching void.
	CastingIllegal CastingMode = iota

	// CastingImplicit means the conversion may happen without an explicit
	// `as` cast in source, e.g. i32 -> i64.
	CastingImplicit

	// CastingExplicit means the conversion is legal but must be spelled out
	// with `as` in source, e.g. i64 -> i32 (may lose precision).
	CastingExplicit
)

func (m CastingMode) String() string {
	switch m {
	case CastingIllegal:
		return "illegal"
	case CastingImplicit:
		return "implicit"
	case CastingExplicit:
		return "explicit"
	default:
		return "<unknown casting mode>"
	}
}

// GetCastingMode decides the legality of converting a value of type from to
// a context expecting type to.
func GetCastingMode(from, to ast.Type) CastingMode {
	if from == nil || to == nil {
		return CastingIllegal
	}

	// Crossing into or out of a distinct ("explicit") TypeAlias downgrades
	// whatever the underlying representations would allow down to
	// CastingExplicit, so `type Meters = f64;` declared distinct can't be
	// silently mixed with a bare f64 even though both are the same bits.
	if crossesExplicitAlias(from, to) {
		switch GetCastingMode(underlyingType(from), underlyingType(to)) {
		case CastingIllegal:
			return CastingIllegal
		default:
			return CastingExplicit
		}
	}

	if IsVoid(from) || IsVoid(to) {
		return CastingIllegal
	}

	if IsPointer(from) && IsPointer(to) {
		return pointerCastingMode(from, to)
	}

	if sameTypeIgnoringConst(from, to) {
		return CastingImplicit
	}

	if IsPointer(from) && isIsizeOrUsize(to) {
		return CastingExplicit
	}
	if isIsizeOrUsize(from) && IsPointer(to) {
		return CastingExplicit
	}

	if IsInteger(from) && IsInteger(to) {
		return integerCastingMode(from, to)
	}

	if IsFloat(from) && IsFloat(to) {
		fromWidth, _ := bitWidth(from)
		toWidth, _ := bitWidth(to)
		if toWidth >= fromWidth {
			return CastingImplicit
		}
		return CastingExplicit
	}

	if (IsInteger(from) && IsFloat(to)) || (IsFloat(from) && IsInteger(to)) {
		return CastingExplicit
	}

	return CastingIllegal
}

func pointerCastingMode(from, to ast.Type) CastingMode {
	fromElem, _ := TryGetPointerElementType(from)
	toElem, _ := TryGetPointerElementType(to)

	if !sameTypeIgnoringConst(fromElem, toElem) {
		return CastingIllegal
	}

	// Adding const (non-const element -> const element) is implicit;
	// removing it requires an explicit cast.
	if !fromElem.IsConst() && toElem.IsConst() {
		return CastingImplicit
	}
	if fromElem.IsConst() && !toElem.IsConst() {
		return CastingExplicit
	}
	return CastingImplicit
}

// crossesExplicitAlias reports whether converting between from and to
// passes through a distinct TypeAlias boundary on either side.
func crossesExplicitAlias(from, to ast.Type) bool {
	return explicitAliasBoundary(from, to) || explicitAliasBoundary(to, from)
}

// explicitAliasBoundary reports whether a is a symbol resolving to a
// distinct TypeAlias and b is not a reference to that very same
// declaration (in which case it would be the same nominal type, not a
// crossing of its boundary).
func explicitAliasBoundary(a, b ast.Type) bool {
	symbol, ok := a.(*ast.TypeSymbol)
	if !ok {
		return false
	}
	target, ok := symbol.ResolvedSymbol()
	if !ok {
		return false
	}
	alias, ok := target.(*ast.TypeAlias)
	if !ok || !alias.Explicit {
		return false
	}
	if bSymbol, ok := b.(*ast.TypeSymbol); ok {
		if bTarget, ok := bSymbol.ResolvedSymbol(); ok && bTarget == target {
			return false
		}
	}
	return true
}

func isIsizeOrUsize(t ast.Type) bool {
	b, ok := t.(*ast.TypeBasic)
	return ok && (b.BasicKind == ast.BasicISize || b.BasicKind == ast.BasicUSize)
}

func integerCastingMode(from, to ast.Type) CastingMode {
	fromSigned, _ := IsIntegerSigned(from)
	toSigned, _ := IsIntegerSigned(to)
	fromWidth, _ := bitWidth(from)
	toWidth, _ := bitWidth(to)

	if fromSigned != toSigned {
		return CastingExplicit
	}
	if toWidth > fromWidth {
		return CastingImplicit
	}
	if toWidth == fromWidth {
		return CastingImplicit
	}
	return CastingExplicit
}

// sameTypeIgnoringConst reports structural equality of two types, ignoring
// their Const qualifiers at every level (same type up to const).
func sameTypeIgnoringConst(a, b ast.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case *ast.TypeBasic:
		bv, ok := b.(*ast.TypeBasic)
		return ok && av.BasicKind == bv.BasicKind
	case *ast.TypeWithBitWidth:
		bv, ok := b.(*ast.TypeWithBitWidth)
		return ok && av.NumericKind == bv.NumericKind && av.BitWidth == bv.BitWidth
	case *ast.TypeSymbol:
		bv, ok := b.(*ast.TypeSymbol)
		if !ok {
			return false
		}
		resolvedA, okA := av.ResolvedSymbol()
		resolvedB, okB := bv.ResolvedSymbol()
		if okA && okB {
			return resolvedA == resolvedB
		}
		return av.Name == bv.Name
	case *ast.TypeUnary:
		bv, ok := b.(*ast.TypeUnary)
		return ok && av.Op == bv.Op && sameTypeIgnoringConst(av.Operand, bv.Operand)
	case *ast.TypeFunction:
		bv, ok := b.(*ast.TypeFunction)
		if !ok || len(av.ArgTypes) != len(bv.ArgTypes) {
			return false
		}
		if !sameTypeIgnoringConst(av.ReturnType, bv.ReturnType) {
			return false
		}
		for i := range av.ArgTypes {
			if !sameTypeIgnoringConst(av.ArgTypes[i], bv.ArgTypes[i]) {
				return false
			}
		}
		return true
	case *ast.TypeStructured:
		bv, ok := b.(*ast.TypeStructured)
		if !ok || len(av.Members) != len(bv.Members) {
			return false
		}
		for i := range av.Members {
			if av.Members[i].Name != bv.Members[i].Name {
				return false
			}
			if !sameTypeIgnoringConst(av.Members[i].VarType, bv.Members[i].VarType) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
