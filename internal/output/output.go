// Package output provides consistent CLI output formatting with progress
// indicators.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Writer provides formatted output for the CLI.
type Writer struct {
	out io.Writer
	tty bool
}

// New creates a Writer. When out is a terminal, progress lines update in
// place; when piped, intermediate progress updates are suppressed so the
// output stays line-oriented.
func New(out io.Writer) *Writer {
	w := &Writer{out: out}
	if f, ok := out.(*os.File); ok {
		w.tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return w
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Progress prints a progress bar with message. On a terminal the line
// updates in place; when piped only the final (complete) line is printed.
func (w *Writer) Progress(current, total int, msg string) {
	if total <= 0 {
		return
	}
	done := current >= total
	if !w.tty && !done {
		return
	}

	pct := float64(current) / float64(total) * 100
	bar := renderProgressBar(current, total, 30)

	if w.tty {
		_, _ = fmt.Fprintf(w.out, "\r[%s] %.0f%% %s", bar, pct, msg)
		if done {
			_, _ = fmt.Fprintln(w.out)
		}
		return
	}
	_, _ = fmt.Fprintf(w.out, "[%s] %.0f%% %s\n", bar, pct, msg)
}

// ProgressDone completes a progress line with newline.
func (w *Writer) ProgressDone() {
	if w.tty {
		_, _ = fmt.Fprintln(w.out)
	}
}

// renderProgressBar creates a text progress bar.
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}

	pct := float64(current) / float64(total)
	filled := int(pct * float64(width))

	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
