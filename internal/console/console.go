// Package console writes the human-facing status lines of the toonify CLI:
// green success marks, red error marks and cyan file names when the stream
// is a terminal, plain text otherwise.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// Printer writes status messages to an output and an error stream.
type Printer struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New returns a Printer writing to out and errOut. Color is enabled when
// out is a terminal and NO_COLOR is not set.
func New(out, errOut io.Writer) *Printer {
	return &Printer{
		out:   out,
		err:   errOut,
		color: colorEnabled(out),
	}
}

func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

// Success prints a green check line to the output stream.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(ansiGreen, "✅ "+fmt.Sprintf(format, args...)))
}

// Error prints a red cross line to the error stream.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.err, p.paint(ansiRed, "❌ "+fmt.Sprintf(format, args...)))
}

// Info prints an uncolored line to the output stream.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// FileName highlights a path for display.
func (p *Printer) FileName(name string) string {
	return p.paint(ansiCyan, name)
}
