package source

// Source is a named text artifact: a path (or "--" for an in-memory literal) and its line-indexed content.
type Source struct {
	Path    string
	Content LineIndexedString
}

// New builds a Source from file content already read into memory. Reading
// files from disk is the CLI's job; this package only owns the text
// once it exists.
func New(path string, content string) *Source {
	return &Source{Path: path, Content: NewLineIndexedString(content)}
}

// NewLiteral builds a Source for text with no backing file, e.g. a snippet
// constructed in a test or by the REPL-less functional test harness.
func NewLiteral(content string) *Source {
	return New("--", content)
}

// TryGetLine delegates to Content.TryGetLine.
func (s *Source) TryGetLine(line int) (string, bool) {
	return s.Content.TryGetLine(line)
}

// LocationAt builds a Location for this source at the given absolute offset.
func (s *Source) LocationAt(offset int) Location {
	line, column := s.Content.OffsetToLineColumn(offset)
	return Location{Source: s, Line: line, Column: column, Offset: offset}
}
