package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muurk/vibetagger/internal/vibe"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way one-shot commands output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = ClampWidth(width)
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintVibe prints a result card
func (p *Printer) PrintVibe(r *vibe.Result) {
	p.Println(RenderVibe(r, NoSelection, p.width))
}

// PrintFailure prints a failure box with troubleshooting tips
func (p *Printer) PrintFailure(title, message string, troubleshooting []string) {
	p.Println(RenderFailure(title, message, troubleshooting, p.width))
}

// PrintHint prints a muted one-line note
func (p *Printer) PrintHint(text string) {
	p.Println(HintStyle.Render(text))
}

// PrintDetails prints aligned key/value lines
func (p *Printer) PrintDetails(details ...Param) {
	p.Println(RenderDetails(details))
}
