// Package ui renders command results for the terminal. It supports styled
// terminal output, plain text and JSON.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/ui/output/styles"
)

// Printer writes lines to an output, styling them when the format is
// FormatTerminal
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a Printer; FormatAuto is resolved against w
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format.Resolve(w)}
}

// Format is the resolved output format
func (p *Printer) Format() Format { return p.format }

// Writer is the underlying output
func (p *Printer) Writer() io.Writer { return p.w }

// Style applies a named style when styling is enabled
func (p *Printer) Style(name, text string) string {
	if p.format != FormatTerminal {
		return text
	}
	return styles.Render(name, text)
}

// Printf writes formatted text without styling
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Line writes text styled with name followed by a newline
func (p *Printer) Line(name, text string) {
	fmt.Fprintln(p.w, p.Style(name, text))
}

// Blank writes an empty line
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Header writes a title underlined with "="
func (p *Printer) Header(title string) {
	p.Line("Header", title)
	p.Line("Muted", strings.Repeat("=", 50))
	p.Blank()
}

// Section writes a section title
func (p *Printer) Section(title string) {
	p.Line("Section", title)
}

// Field writes an indented "label: value" line
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", p.Style("Label", label+":"), p.Style("Value", value))
}

// Success writes a success line
func (p *Printer) Success(text string) { p.Line("Success", text) }

// Warning writes a warning line
func (p *Printer) Warning(text string) { p.Line("Warning", text) }

// Muted writes a de-emphasized line
func (p *Printer) Muted(text string) { p.Line("Muted", text) }

// JSON writes v as indented JSON
func (p *Printer) JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON output")
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}
