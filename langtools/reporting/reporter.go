// Package reporting renders a messaging.Context's diagnostics to a terminal:
// colored severity tags, the optional diagnostic code, the message text, and
// -- when the message's range has source -- a sample of the surrounding
// lines with the range underlined.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dustin/go-humanize"

	"github.com/sophie-lund/forge/langtools/messaging"
	"github.com/sophie-lund/forge/langtools/source"
)

// Options configures how a Reporter renders. The zero value is ready to use
// and matches the CLI's default (colors on, no context padding).
type Options struct {
	// ContextLines is how many lines of source to show above and below the
	// line(s) a message's range covers. Zero shows only the referenced
	// line(s) themselves.
	ContextLines int

	// DisableColor forces plain-text severity tags, used by the `check`
	// subcommand's `--no-color` flag and by tests that assert on output
	// verbatim.
	DisableColor bool
}

// Reporter renders messages from a single messaging.Context to an io.Writer.
type Reporter struct {
	w       io.Writer
	opts    Options
	maxLine int
}

// New returns a Reporter that writes to w, right-aligning line-number
// gutters to the width of ctx.MaxLine() so numbers never need re-padding
// mid-batch.
func New(w io.Writer, ctx *messaging.Context, opts Options) *Reporter {
	return &Reporter{w: w, opts: opts, maxLine: ctx.MaxLine()}
}

// Report renders every message in ctx, sorted by severity descending then by
// source offset ascending. Children render indented directly
// below their parent in their original insertion order -- they are not
// independently re-sorted into the top-level ordering.
func Report(w io.Writer, ctx *messaging.Context, opts Options) {
	r := New(w, ctx, opts)
	messages := ctx.Messages()

	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].Severity.Value() != messages[j].Severity.Value() {
			return messages[i].Severity.Value() > messages[j].Severity.Value()
		}
		return messages[i].Range.Start.Offset < messages[j].Range.Start.Offset
	})

	for _, m := range messages {
		r.renderMessage(m, 0)
	}
}

func (r *Reporter) renderMessage(m messaging.Message, depth int) {
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(r.w, "%s%s", indent, r.severityTag(m.Severity))
	if m.Code != "" {
		fmt.Fprintf(r.w, " [%s]", m.Code)
	}
	fmt.Fprintf(r.w, ": %s\n", m.Text)

	if !m.Range.IsEmpty() && m.Range.Start.Source != nil {
		r.renderSample(m.Range, depth+1)
	}

	for _, child := range m.Children {
		r.renderMessage(child, depth+1)
	}
}

func (r *Reporter) severityTag(s messaging.Severity) string {
	name := strings.ToUpper(s.Name())
	if r.opts.DisableColor || s.Color() == nil {
		return name
	}
	return s.Color().Sprint(name)
}

// renderSample writes the source lines rng covers (plus ContextLines of
// padding on either side), deindented, with a caret/tilde underline beneath
// the referenced span on the first referenced line.
func (r *Reporter) renderSample(rng source.Range, depth int) {
	src := rng.Start.Source
	startLine := rng.Start.Line
	endLine := rng.Start.Line
	if rng.HasEnd() && rng.End.Source == src {
		endLine = rng.End.Line
	}

	first := startLine - r.opts.ContextLines
	if first < 1 {
		first = 1
	}
	last := endLine + r.opts.ContextLines

	lines := make([]string, 0, last-first+1)
	for ln := first; ln <= last; ln++ {
		text, ok := src.TryGetLine(ln)
		if !ok {
			break
		}
		lines = append(lines, text)
	}
	if len(lines) == 0 {
		return
	}

	deindented, stripped := deindent(lines)

	gutterWidth := len(fmt.Sprintf("%d", r.maxLine))
	indent := strings.Repeat("  ", depth)

	for i, text := range deindented {
		ln := first + i
		fmt.Fprintf(r.w, "%s%*d | %s\n", indent, gutterWidth, ln, text)

		if ln == startLine {
			fmt.Fprintf(r.w, "%s%s | %s\n", indent, strings.Repeat(" ", gutterWidth), underline(text, rng.Start.Column-1-stripped, underlineWidth(rng)))
		}
	}
}

func underlineWidth(rng source.Range) int {
	if !rng.HasEnd() || rng.End.Line != rng.Start.Line {
		return 1
	}
	w := rng.End.Column - rng.Start.Column
	if w < 1 {
		w = 1
	}
	return w
}

func underline(line string, col, width int) string {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	return strings.Repeat(" ", col) + "^" + strings.Repeat("~", maxInt(width-1, 0))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// deindent strips the longest common leading-whitespace prefix shared by
// every non-empty line in lines, returning the deindented lines and the
// number of columns stripped (used to keep the underline's column aligned
// with the deindented text). The stripping itself is done with rosed's
// per-line Apply, slicing the shared margin off each line.
func deindent(lines []string) ([]string, int) {
	common := commonIndent(lines)
	if common <= 0 {
		return lines, 0
	}

	trimmed := rosed.Edit(strings.Join(lines, "\n")).
		Apply(func(idx int, line string) []string {
			if len(line) >= common {
				return []string{line[common:]}
			}
			return []string{""}
		}).
		String()

	return strings.Split(trimmed, "\n"), common
}

func commonIndent(lines []string) int {
	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if common == -1 || n < common {
			common = n
		}
	}
	return common
}

// SummarizeObjectFile formats a human-readable byte-size summary line for
// the object file written to path, used by `-v`/trace output in cmd/forgec's
// `build` subcommand.
func SummarizeObjectFile(path string, sizeBytes int64) string {
	return fmt.Sprintf("wrote %s (%s)", path, humanize.Bytes(uint64(sizeBytes)))
}
