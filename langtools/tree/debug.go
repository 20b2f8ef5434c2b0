package tree

import (
	"fmt"
	"strings"
)

// DebugFormatter accumulates the stable debug-dump text: "[kind]" then indented "field: value" lines, deterministic given
// identical semantic content and node ordering. The functional test harness
// (forgec/testharness) compares this output against golden fixtures, so
// nothing here may depend on map iteration order, pointer values, or wall
// clock time.
type DebugFormatter struct {
	sb     strings.Builder
	indent int
}

// NewDebugFormatter returns an empty formatter.
func NewDebugFormatter() *DebugFormatter {
	return &DebugFormatter{}
}

// String returns the accumulated text.
func (f *DebugFormatter) String() string {
	return f.sb.String()
}

func (f *DebugFormatter) writeIndent() {
	f.sb.WriteString(strings.Repeat("  ", f.indent))
}

// NodeLabel writes a node's opening "[kind]" line.
func (f *DebugFormatter) NodeLabel(kind *Kind) {
	f.writeIndent()
	f.sb.WriteString("[")
	f.sb.WriteString(kind.Name())
	f.sb.WriteString("]\n")
}

// Field writes "name: value" for a scalar field.
func (f *DebugFormatter) Field(name string, value any) {
	f.indent++
	f.writeIndent()
	f.sb.WriteString(name)
	f.sb.WriteString(": ")
	fmt.Fprintf(&f.sb, "%v", value)
	f.sb.WriteString("\n")
	f.indent--
}

// NodeField writes "name:" followed by a nested, further-indented node
// (or "null" if child is nil).
func (f *DebugFormatter) NodeField(name string, child Node) {
	f.indent++
	f.writeIndent()
	f.sb.WriteString(name)
	f.sb.WriteString(":\n")

	f.indent++
	if child == nil {
		f.writeIndent()
		f.sb.WriteString("null\n")
	} else {
		child.FormatDebug(f)
	}
	f.indent--

	f.indent--
}

// NodeListField writes "name:" followed by each element of children, each
// further-indented and prefixed with its index.
func (f *DebugFormatter) NodeListField(name string, children []Node) {
	f.indent++
	f.writeIndent()
	fmt.Fprintf(&f.sb, "%s (%d):\n", name, len(children))

	f.indent++
	for i, child := range children {
		f.writeIndent()
		fmt.Fprintf(&f.sb, "[%d]:\n", i)
		f.indent++
		if child == nil {
			f.writeIndent()
			f.sb.WriteString("null\n")
		} else {
			child.FormatDebug(f)
		}
		f.indent--
	}
	f.indent--

	f.indent--
}

// FormatDebug renders n's full debug-dump text in one call.
func FormatDebug(n Node) string {
	f := NewDebugFormatter()
	if n == nil {
		f.sb.WriteString("null\n")
		return f.String()
	}
	n.FormatDebug(f)
	return f.String()
}
