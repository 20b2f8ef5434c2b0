package messaging

import "github.com/fatih/color"

// Severity ranks a Message from least to most urgent. Values are spaced out
// so that future severities can be inserted between existing ones without a
// renumbering.
type Severity struct {
	value int
	name  string
	color *color.Color
}

// Value returns the severity's ordering value. Higher values are more severe.
func (s Severity) Value() int { return s.value }

// Name returns the human-readable, lowercase name of the severity.
func (s Severity) Name() string { return s.name }

// Color returns the terminal color used to render this severity's prefix.
func (s Severity) Color() *color.Color { return s.color }

// String implements fmt.Stringer.
func (s Severity) String() string { return s.name }

var (
	// SeveritySuggestion marks a purely stylistic recommendation.
	SeveritySuggestion = Severity{100, "suggestion", color.New(color.FgGreen)}

	// SeverityNote annotates another message with supplementary context. Notes
	// never affect the pipeline's error count.
	SeverityNote = Severity{200, "note", color.New(color.FgCyan)}

	// SeverityWarning flags a likely mistake that does not prevent codegen.
	SeverityWarning = Severity{300, "warning", color.New(color.FgYellow)}

	// SeverityError flags input that the pipeline cannot act on further; it
	// halts progression to subsequent passes and to codegen.
	SeverityError = Severity{400, "error", color.New(color.FgRed)}

	// SeverityFatalError flags an error severe enough that the current pass
	// should stop immediately rather than continue looking for more problems.
	SeverityFatalError = Severity{500, "fatal error", color.New(color.FgHiRed, color.Bold)}
)

// IsError reports whether s is at least as severe as SeverityError. Pipeline
// orchestration uses this to decide whether to advance to the next pass.
func (s Severity) IsError() bool {
	return s.value >= SeverityError.value
}
