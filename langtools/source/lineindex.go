package source

import "unicode/utf16"

// LineIndexedString owns a string's content and a precomputed line index so
// that line lookup is O(1) after construction. Offsets are in UTF-16
// code units (not bytes, not runes) to match the rest of the pipeline's
// notion of "column" and "offset".
type LineIndexedString struct {
	units []uint16

	// lineStarts[i] is the code-unit offset of the first unit of line i+1
	// (so lineStarts[0] == 0 always, for line 1).
	lineStarts []int
}

// NewLineIndexedString indexes value's lines. Indexing is O(n) in the length
// of value and happens exactly once, here.
func NewLineIndexedString(value string) LineIndexedString {
	units := utf16.Encode([]rune(value))

	lineStarts := []int{0}
	for i, u := range units {
		if u == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	return LineIndexedString{units: units, lineStarts: lineStarts}
}

// Value returns the original string content.
func (s LineIndexedString) Value() string {
	return string(utf16.Decode(s.units))
}

// Units returns the content's backing UTF-16 code units. Callers must treat
// the returned slice as read-only; it is shared with the LineIndexedString.
func (s LineIndexedString) Units() []uint16 {
	return s.units
}

// Len returns the number of UTF-16 code units in the content.
func (s LineIndexedString) Len() int {
	return len(s.units)
}

// LineCount returns the number of lines in the string. An empty string has
// zero lines; a string with no newline has exactly one.
func (s LineIndexedString) LineCount() int {
	if len(s.units) == 0 {
		return 0
	}
	return len(s.lineStarts)
}

// TryGetLine returns the half-open slice of content between the start of line
// and the start of line+1 (with any trailing LF excluded), or ("", false) if
// line is out of range. line is 1-indexed.
func (s LineIndexedString) TryGetLine(line int) (string, bool) {
	if line < 1 || line > len(s.lineStarts) {
		return "", false
	}

	start := s.lineStarts[line-1]
	end := len(s.units)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1 // exclude the LF itself
		if end < start {
			end = start
		}
	}

	return string(utf16.Decode(s.units[start:end])), true
}

// OffsetToLineColumn converts an absolute UTF-16 offset into a 1-indexed
// (line, column) pair. column counts code units from the start of the line,
// also 1-indexed.
func (s LineIndexedString) OffsetToLineColumn(offset int) (line, column int) {
	line = 1
	for i := 1; i < len(s.lineStarts); i++ {
		if s.lineStarts[i] > offset {
			break
		}
		line = i + 1
	}
	column = offset - s.lineStarts[line-1] + 1
	return line, column
}
