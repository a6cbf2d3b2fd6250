// Package logging builds the hclog logger shared by all commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	// Level is one of trace, debug, info, warn, error or off.
	Level string
	// JSON switches to JSON-formatted output.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates the root logger.
func New(opts Options) (hclog.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := hclog.Info
	if opts.Level != "" {
		level = hclog.LevelFromString(strings.ToLower(opts.Level))
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("invalid log level %q", opts.Level)
		}
	}

	color := hclog.ColorOff
	if !opts.JSON && IsTerminal(out) {
		color = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            "themeregistry",
		Output:          out,
		Level:           level,
		JSONFormat:      opts.JSON,
		Color:           color,
		DisableTime:     !opts.JSON,
		IncludeLocation: level <= hclog.Trace,
	}), nil
}

// LevelFor maps the --verbose and --quiet flags onto a level name.
func LevelFor(verbose, quiet bool, configured string) string {
	switch {
	case quiet:
		return "error"
	case verbose:
		return "debug"
	case configured != "":
		return configured
	}
	return "info"
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
