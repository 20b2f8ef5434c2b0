package typesys

import "github.com/sophie-lund/forge/forgec/ast"

// GetArithmeticContainingType returns the smallest type both a and b cast
// implicitly to. It returns nil, false if no such type exists
// (e.g. either operand is a pointer or a structured type).
func GetArithmeticContainingType(a, b ast.Type) (ast.Type, bool) {
	if a == nil || b == nil {
		return nil, false
	}

	if !IsInteger(a) && !IsFloat(a) {
		return nil, false
	}
	if !IsInteger(b) && !IsFloat(b) {
		return nil, false
	}

	if IsFloat(a) || IsFloat(b) {
		return widestFloat(a, b), true
	}

	return widestInteger(a, b), true
}

func widestFloat(a, b ast.Type) ast.Type {
	widthOf := func(t ast.Type) int {
		if IsFloat(t) {
			w, _ := bitWidth(t)
			return w
		}
		// An integer operand paired with a float: the result is the
		// widest float present, so the integer side contributes nothing.
		return 0
	}

	aWidth, bWidth := widthOf(a), widthOf(b)
	if aWidth >= bWidth {
		if IsFloat(a) {
			return a
		}
		return b
	}
	return b
}

func widestInteger(a, b ast.Type) ast.Type {
	aSigned, _ := IsIntegerSigned(a)
	bSigned, _ := IsIntegerSigned(b)
	aWidth, _ := bitWidth(a)
	bWidth, _ := bitWidth(b)

	if aWidth == bWidth && aSigned == bSigned {
		return a
	}

	if aSigned == bSigned {
		if aWidth >= bWidth {
			return a
		}
		return b
	}

	// Differing signedness: prefer the signed type, widened by one step if
	// it is not already strictly wider than the unsigned type, so the
	// signed containing type can represent every value of the unsigned one.
	var signedType ast.Type
	var signedWidth, unsignedWidth int
	if aSigned {
		signedType = a
		signedWidth, unsignedWidth = aWidth, bWidth
	} else {
		signedType = b
		signedWidth, unsignedWidth = bWidth, aWidth
	}

	if signedWidth > unsignedWidth {
		return signedType
	}

	return widenSigned(signedType, unsignedWidth)
}

// widenSigned returns a signed integer type at least one bit wider than
// minWidth, clamped to the widest bit width Forge defines (64, via
// isize/i64).
func widenSigned(signedType ast.Type, minWidth int) ast.Type {
	widened := minWidth * 2
	if widened > 64 {
		widened = 64
	}

	if b, ok := signedType.(*ast.TypeBasic); ok && (b.BasicKind == ast.BasicISize) {
		return ast.NewTypeBasic(b.Range(), ast.BasicISize)
	}

	return ast.NewTypeWithBitWidth(signedType.Range(), ast.NumericSignedInt, widened)
}
