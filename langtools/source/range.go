package source

// Range is a span of source text: a start Location and an optional end
// Location. The zero-value Range is "no location" -- used for diagnostics
// that are not bound to any particular source text.
type Range struct {
	Start Location
	End   Location

	// hasEnd distinguishes a single-point range (End unset) from a range with
	// no end at all (the empty/zero Range). A Range constructed via At has
	// hasEnd == false and Start == End == that single location conceptually,
	// but we track the bit explicitly so IsEmpty can tell "no location" apart
	// from "a single-point location at line 1 column 1".
	hasEnd bool
}

// At constructs a Range pointing to a single Location.
func At(loc Location) Range {
	return Range{Start: loc, End: loc, hasEnd: false}
}

// Between constructs a Range spanning from start to end, inclusive.
func Between(start, end Location) Range {
	return Range{Start: start, End: end, hasEnd: true}
}

// IsEmpty reports whether r carries no source location at all.
func (r Range) IsEmpty() bool {
	return r.Start.IsZero() && r.End.IsZero() && !r.hasEnd
}

// HasEnd reports whether r was constructed with an explicit distinct end
// location (via Between) as opposed to a single point (via At).
func (r Range) HasEnd() bool {
	return r.hasEnd
}

// Combine returns the smallest Range covering both a and b: the minimum of
// their starts and the maximum of their ends. If either range is empty, the
// other is returned unchanged.
func Combine(a, b Range) Range {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}

	start := a.Start
	if b.Start.Offset < start.Offset {
		start = b.Start
	}

	end := a.End
	if b.End.Offset > end.Offset {
		end = b.End
	}

	return Range{Start: start, End: end, hasEnd: true}
}

// String renders the range for diagnostic output.
func (r Range) String() string {
	if r.IsEmpty() {
		return "<no location>"
	}
	if !r.hasEnd || r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ".." + r.End.String()
}
