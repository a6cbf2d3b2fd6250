package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themeregistry/internal/logging"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// console writes human-facing status lines. Styling is dropped when the
// writer is not a terminal so output stays stable in pipes and tests.
type console struct {
	w     io.Writer
	quiet bool
	color bool
}

func newConsole(w io.Writer, quiet bool) *console {
	return &console{w: w, quiet: quiet, color: logging.IsTerminal(w)}
}

func (c *console) render(style lipgloss.Style, s string) string {
	if !c.color {
		return s
	}
	return style.Render(s)
}

func (c *console) success(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "%s %s\n", c.render(successStyle, "✓"), fmt.Sprintf(format, args...))
}

func (c *console) warn(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "%s %s\n", c.render(warningStyle, "⚠"), fmt.Sprintf(format, args...))
}

// fail is printed even in quiet mode.
func (c *console) fail(format string, args ...any) {
	fmt.Fprintf(c.w, "%s %s\n", c.render(failureStyle, "✗"), fmt.Sprintf(format, args...))
}

func (c *console) heading(s string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.w, c.render(headingStyle, s))
}

func (c *console) println(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *console) muted(s string) string {
	return c.render(mutedStyle, s)
}
