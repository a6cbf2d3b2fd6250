// Package selection holds the active theme choice. The document and the
// persistent storage it writes to are injected, so the store works the same
// behind an HTTP request, a CLI state file or a test.
package selection

import (
	"strings"

	"github.com/jmylchreest/themeregistry/internal/registry"
	"github.com/jmylchreest/themeregistry/internal/theme"
)

// DefaultID is the identifier of the fallback theme.
const DefaultID = "default"

// ThemeInfo describes a selectable theme.
type ThemeInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Catalog is the ordered set of known themes. The first entry is the default.
type Catalog []ThemeInfo

// DefaultCatalog returns the built-in theme list.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: DefaultID, Name: "Default", Description: "The default shadcn-svelte theme"},
		{ID: "material", Name: "Material", Description: "Material Design inspired theme"},
		{ID: "minimal", Name: "Minimal", Description: "Clean and minimal design"},
		{ID: "corporate", Name: "Corporate", Description: "Professional corporate styling"},
		{ID: "twitter", Name: "Twitter", Description: "Twitter-inspired blue theme with rounded corners"},
		{ID: "bubblegum", Name: "Bubblegum", Description: "Playful pink and pastel theme"},
		{ID: "catppuccin", Name: "Catppuccin", Description: "Soothing pastel theme with purple accents"},
		{ID: "graphite", Name: "Graphite", Description: "Sleek monochromatic gray theme"},
	}
}

// CatalogFromManifest builds a catalog from the theme items of a manifest,
// with the default theme first.
func CatalogFromManifest(m *registry.Manifest) Catalog {
	catalog := Catalog{DefaultCatalog()[0]}
	seen := map[string]bool{DefaultID: true}

	for _, item := range m.ItemsOfType(registry.TypeTheme) {
		id := theme.StemForItem(item.Name)
		if seen[id] {
			continue
		}
		seen[id] = true

		name := item.Title
		if name == "" {
			name = titleCase(id)
		}
		catalog = append(catalog, ThemeInfo{ID: id, Name: name, Description: item.Description})
	}

	return catalog
}

// Contains reports whether id is a known theme.
func (c Catalog) Contains(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Lookup returns the theme with the given id.
func (c Catalog) Lookup(id string) (ThemeInfo, bool) {
	for _, info := range c {
		if info.ID == id {
			return info, true
		}
	}
	return ThemeInfo{}, false
}

// Default returns the first catalog entry.
func (c Catalog) Default() ThemeInfo {
	if len(c) == 0 {
		return ThemeInfo{ID: DefaultID, Name: "Default"}
	}
	return c[0]
}

// IDs returns every identifier in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, info := range c {
		ids[i] = info.ID
	}
	return ids
}

func titleCase(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
