package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// Formatter renders diagnostics in a Rust-style format with source
// snippets, adapted from the teacher's diagnostic formatter for the
// parser's "previous definition is here" secondary-location requirement.
type Formatter struct {
	w io.Writer
}

// NewFormatter returns a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Format writes one diagnostic, including any secondary locations, with a
// source snippet for every location that carries a Source.
func (f *Formatter) Format(d Diagnostic) {
	fmt.Fprintf(f.w, "%s[%s]: %s\n", d.Severity, d.Kind, d.Message)
	f.printLocation(d.Loc, "")
	for _, sec := range d.Secondary {
		f.printLocation(sec.Loc, sec.Label)
	}
}

func (f *Formatter) printLocation(loc lexer.Location, label string) {
	path := loc.Path()
	if path == "" {
		return
	}
	if label != "" {
		fmt.Fprintf(f.w, "  --> %s:%d:%d: %s\n", path, loc.Line, loc.Column, label)
	} else {
		fmt.Fprintf(f.w, "  --> %s:%d:%d\n", path, loc.Line, loc.Column)
	}
	width := loc.End - loc.Start
	if snippet := Snippet(loc.Source.Text, loc.Line, loc.Column, width); snippet != "" {
		fmt.Fprintln(f.w, snippet)
	}
}

// FormatAll writes every diagnostic in order, separated by a blank line.
func (f *Formatter) FormatAll(diags []Diagnostic) {
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(f.w)
		}
		f.Format(d)
	}
}

// Snippet renders the single source line a location starts on, with a
// caret line underneath marking the span, in the style of the teacher's
// line-numbered snippet printer.
func Snippet(text string, line, column, width int) string {
	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	content := lines[line-1]
	if width < 1 {
		width = 1
	}
	caretPad := column - 1
	if caretPad < 0 {
		caretPad = 0
	}
	caret := strings.Repeat(" ", caretPad) + strings.Repeat("^", width)
	return fmt.Sprintf("%d | %s\n    %s", line, content, caret)
}
