package messaging

import (
	"fmt"

	"github.com/sophie-lund/forge/langtools/source"
)

// Message is a single diagnostic emitted somewhere in the pipeline: a lex,
// parse, semantic, or codegen problem, or just an informational note.
type Message struct {
	// Range is the source range the message refers to. A zero-value Range
	// (source.Range{}.IsEmpty() == true) means the message is not bound to any
	// particular source location.
	Range source.Range

	// Severity is how urgent the message is.
	Severity Severity

	// Code is a short, stable, alphanumeric identifier for the kind of
	// message (e.g. "undeclared-symbol"). Empty if the message has no code.
	Code string

	// Text is the human-readable message body.
	Text string

	// Children holds sub-messages attached to this one (e.g. "note: declared
	// here"). They render indented directly below their parent and are kept
	// in the order they were added.
	Children []Message
}

// New builds a Message with no code.
func New(rng source.Range, severity Severity, text string) Message {
	return Message{Range: rng, Severity: severity, Text: text}
}

// NewWithCode builds a Message carrying a diagnostic code.
func NewWithCode(rng source.Range, severity Severity, code, text string) Message {
	return Message{Range: rng, Severity: severity, Code: code, Text: text}
}

// Newf builds a Message with a formatted body.
func Newf(rng source.Range, severity Severity, format string, args ...any) Message {
	return New(rng, severity, fmt.Sprintf(format, args...))
}

// WithChild returns a copy of m with child appended to its Children.
func (m Message) WithChild(child Message) Message {
	m.Children = append(append([]Message{}, m.Children...), child)
	return m
}
