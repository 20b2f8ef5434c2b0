package lex

import (
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/unicode/rangetable"
)

// graphemeReader walks a UTF-16 code-unit buffer one extended grapheme
// cluster at a time. golang.org/x/text ships Unicode range tables but not
// a ready-made grapheme-cluster break iterator, so this reader implements
// the common case of UAX #29 directly: a cluster is a base code unit
// followed by any run of combining marks, using x/text's combining-mark
// range table for the classification.
type graphemeReader struct {
	units  []uint16
	offset int
}

var combiningMarks = rangetable.Merge(unicode.Mn, unicode.Me)

func newGraphemeReader(units []uint16) *graphemeReader {
	return &graphemeReader{units: units}
}

// areMore reports whether any grapheme clusters remain unread.
func (g *graphemeReader) areMore() bool {
	return g.offset < len(g.units)
}

// peekNext returns the next cluster without consuming it.
func (g *graphemeReader) peekNext() (string, bool) {
	return g.clusterAt(g.offset)
}

// readNext consumes and returns the next cluster.
func (g *graphemeReader) readNext() (string, bool) {
	cluster, ok := g.clusterAt(g.offset)
	if !ok {
		return "", false
	}
	g.offset += clusterUnitLen(cluster)
	return cluster, true
}

// offsetUnits returns the current UTF-16 code-unit offset into the buffer.
func (g *graphemeReader) offsetUnits() int {
	return g.offset
}

func clusterUnitLen(cluster string) int {
	return len(utf16.Encode([]rune(cluster)))
}

// clusterAt decodes the grapheme cluster starting at code-unit index start,
// without mutating reader state.
func (g *graphemeReader) clusterAt(start int) (string, bool) {
	if start >= len(g.units) {
		return "", false
	}

	runes := utf16.Decode(g.units[start:])
	if len(runes) == 0 {
		return "", false
	}

	end := 1
	for end < len(runes) && unicode.Is(combiningMarks, runes[end]) {
		end++
	}

	return string(runes[:end]), true
}
