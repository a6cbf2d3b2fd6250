// Package themecss renders theme definitions into a single stylesheet with one
// class-scoped rule per theme and a .dark-scoped rule for dark values.
package themecss

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themeregistry/internal/cssvars"
	"github.com/jmylchreest/themeregistry/internal/theme"
)

//go:embed *.tmpl
var templates embed.FS

// DarkSelector is the ancestor class that switches themes to dark values.
const DarkSelector = ".dark"

// CSSData holds data for the stylesheet template.
type CSSData struct {
	Themes []CSSTheme
}

// CSSTheme holds the rendered declarations of one theme.
type CSSTheme struct {
	Name     string
	Class    string
	HasLight bool
	HasDark  bool
	// Light holds theme tokens followed by light colours.
	Light []string
	Dark  []string
}

// Generate renders the stylesheet for entries, in the order given.
func Generate(entries []theme.Entry) ([]byte, error) {
	tmplContent, err := templates.ReadFile("themes.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read CSS template: %w", err)
	}

	tmpl, err := template.New("themes.css").Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS template: %w", err)
	}

	data := prepareCSSData(entries)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute CSS template: %w", err)
	}

	return buf.Bytes(), nil
}

// prepareCSSData converts theme entries to template data.
func prepareCSSData(entries []theme.Entry) CSSData {
	data := CSSData{Themes: make([]CSSTheme, 0, len(entries))}

	for _, e := range entries {
		vars := e.Definition.CSSVars
		t := CSSTheme{
			Name:     e.Name,
			Class:    theme.ClassName(e.Name),
			HasLight: vars.Light != nil,
			HasDark:  vars.Dark != nil,
		}

		if t.HasLight {
			t.Light = append(declarations(vars.Theme), declarations(vars.Light)...)
		}
		if t.HasDark {
			t.Dark = declarations(vars.Dark)
		}

		data.Themes = append(data.Themes, t)
	}

	return data
}

func declarations(vars *cssvars.Vars) []string {
	entries := vars.Entries()
	decls := make([]string, 0, len(entries))
	for _, e := range entries {
		decls = append(decls, cssvars.Declaration(e.Key, e.Value))
	}
	return decls
}

// Generator writes the aggregated stylesheet for a themes directory.
type Generator struct {
	ThemesDir string
	Output    string
	Logger    hclog.Logger
}

// Run loads every theme, renders the stylesheet and overwrites Output.
// Any unreadable directory or unparsable theme aborts without writing.
func (g *Generator) Run() (int, error) {
	logger := g.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("css")

	entries, err := theme.LoadDir(g.ThemesDir)
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		logger.Debug("processing theme", "name", e.Name, "path", e.Path)
	}

	css, err := Generate(entries)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(g.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(g.Output, css, 0o644); err != nil { // #nosec G306 - stylesheet is a public asset
		return 0, fmt.Errorf("failed to write stylesheet: %w", err)
	}

	logger.Info("generated theme stylesheet", "output", g.Output, "themes", len(entries))
	return len(entries), nil
}
