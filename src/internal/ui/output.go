// Package ui renders user-facing output: leveled messages, headers,
// spinners and step reporters.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	mu  sync.Mutex
	out io.Writer = color.Output

	successColor   = color.New(color.FgGreen)
	warningColor   = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
	infoColor      = color.New(color.FgCyan)
	highlightColor = color.New(color.FgMagenta, color.Bold)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EC796B"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func init() {
	if termenv.EnvColorProfile() == termenv.Ascii {
		DisableColor()
	}
}

// DisableColor turns off all styling, e.g. for --no-color or dumb terminals.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// SetOutput redirects all ui output and returns a function restoring the
// previous writer. Used by tests.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out = prev
	}
}

// Output returns the current ui writer.
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// IsInteractive reports whether stdout is a terminal.
func IsInteractive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Header prints a bold section title.
func Header(format string, args ...interface{}) {
	fmt.Fprintln(Output(), headerStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a green check line.
func Success(format string, args ...interface{}) {
	fmt.Fprintln(Output(), successColor.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

// Info prints a plain informational line.
func Info(format string, args ...interface{}) {
	fmt.Fprintln(Output(), fmt.Sprintf(format, args...))
}

// Progress prints an arrow line announcing work.
func Progress(format string, args ...interface{}) {
	fmt.Fprintln(Output(), infoColor.Sprint("→ ")+fmt.Sprintf(format, args...))
}

// Warning prints a yellow warning line.
func Warning(format string, args ...interface{}) {
	fmt.Fprintln(Output(), warningColor.Sprint("⚠ ")+fmt.Sprintf(format, args...))
}

// Error prints a red error line.
func Error(format string, args ...interface{}) {
	fmt.Fprintln(Output(), errorColor.Sprint("✗ ")+fmt.Sprintf(format, args...))
}

// Printf prints without a trailing newline or decoration.
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(Output(), format, args...)
}

// Highlight emphasizes a value inside a message.
func Highlight(s string) string {
	return highlightColor.Sprint(s)
}

// ActiveVersion colors a version that is currently selected.
func ActiveVersion(s string) string {
	return successColor.Sprint(s)
}

// Dim renders secondary text.
func Dim(s string) string {
	return dimStyle.Render(s)
}
