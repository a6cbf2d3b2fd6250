package importer

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/themeregistry/internal/cssvars"
)

// ThemeDefaults are the theme-scope tokens copied from the remote, with the
// value used when the remote omits one.
var ThemeDefaults = []cssvars.Entry{
	{Key: "font-sans", Value: "system-ui, sans-serif"},
	{Key: "font-mono", Value: "ui-monospace, monospace"},
	{Key: "font-serif", Value: "ui-serif, serif"},
	{Key: "radius", Value: "0.5rem"},
}

// ColourTokens are copied verbatim from the remote light and dark groups.
var ColourTokens = []string{
	"background",
	"foreground",
	"card",
	"card-foreground",
	"popover",
	"popover-foreground",
	"primary",
	"primary-foreground",
	"secondary",
	"secondary-foreground",
	"muted",
	"muted-foreground",
	"accent",
	"accent-foreground",
	"destructive",
	"destructive-foreground",
	"border",
	"input",
	"ring",
}

// NotFoundError is returned when the remote registry has no item with the
// requested name. Available carries every remote item for display.
type NotFoundError struct {
	Name      string
	Available []RemoteItem
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("theme %q not found in remote registry (%d available)", e.Name, len(e.Available))
}

// MissingTokensError is returned when the remote theme lacks colour tokens.
type MissingTokensError struct {
	Name   string
	Tokens []string
}

func (e *MissingTokensError) Error() string {
	return fmt.Sprintf("remote theme %q is missing %d colour token(s): %s",
		e.Name, len(e.Tokens), strings.Join(e.Tokens, ", "))
}
