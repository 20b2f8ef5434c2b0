// Package source owns source text: named artifacts with O(1) line lookup,
// plus the location/range types used throughout the pipeline to tie tokens,
// syntax-tree nodes, and diagnostics back to the text they came from.
package source

import "fmt"

// Location is a single point within a Source: a 1-indexed line, a 1-indexed
// column, and the absolute UTF-16 code-unit offset from the start of the
// source. Equality is structural.
type Location struct {
	Source *Source
	Line   int
	Column int
	Offset int
}

// String renders "path:line:column" for use in error output.
func (l Location) String() string {
	path := "--"
	if l.Source != nil {
		path = l.Source.Path
	}
	return fmt.Sprintf("%s:%d:%d", path, l.Line, l.Column)
}

// IsZero reports whether l is the unset Location value.
func (l Location) IsZero() bool {
	return l == Location{}
}
