// Package theme loads theme definitions: named bundles of CSS custom
// properties for light and dark appearance plus typography and radius tokens.
package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmylchreest/themeregistry/internal/cssvars"
)

const (
	// SchemaURL is the registry item schema written into theme files.
	SchemaURL = "https://shadcn-svelte.com/schema/registry-item.json"

	// ItemType is the registry type tag for themes.
	ItemType = "registry:theme"

	// NameSuffix is stripped from registry item names to find the source file stem.
	NameSuffix = "-theme"

	// FileExt is the extension of theme definition files.
	FileExt = ".json"
)

// CSSVars groups the three optional property sets of a theme.
type CSSVars struct {
	Theme *cssvars.Vars `json:"theme,omitempty"`
	Light *cssvars.Vars `json:"light,omitempty"`
	Dark  *cssvars.Vars `json:"dark,omitempty"`
}

// Definition is a theme definition document.
type Definition struct {
	Schema      string  `json:"$schema,omitempty"`
	Name        string  `json:"name,omitempty"`
	Type        string  `json:"type,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	CSSVars     CSSVars `json:"cssVars"`
}

// Entry is a definition loaded from a themes directory.
type Entry struct {
	// Name is the file stem, used for the .theme-<name> class.
	Name       string
	Path       string
	Definition *Definition
}

// Parse decodes a theme definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a single theme file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path) // #nosec G304 - theme path supplied by operator
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", path, err)
	}
	return def, nil
}

// LoadDir loads every .json file in dir, ordered by file name.
// Any unreadable or unparsable file aborts the load.
func LoadDir(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), FileExt) {
			continue
		}

		path := filepath.Join(dir, f.Name())
		def, err := Load(path)
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{
			Name:       strings.TrimSuffix(f.Name(), FileExt),
			Path:       path,
			Definition: def,
		})
	}

	return entries, nil
}

// StemForItem returns the source file stem for a theme registry item name.
// One trailing "-theme" is removed if present.
func StemForItem(name string) string {
	return strings.TrimSuffix(name, NameSuffix)
}

// ClassName returns the CSS class that scopes a theme.
func ClassName(stem string) string {
	return "theme-" + stem
}

// Marshal encodes a definition the way theme files are stored on disk.
func Marshal(def *Definition) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(def); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
