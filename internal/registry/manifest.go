// Package registry provides the registry manifest model, item resolution and
// the static registry builder.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ItemType is the registry type tag of an item.
type ItemType string

const (
	// TypeTheme marks a theme definition.
	TypeTheme ItemType = "registry:theme"
	// TypeUI marks a UI component definition.
	TypeUI ItemType = "registry:ui"
)

// Supported reports whether the builder knows how to resolve this type.
func (t ItemType) Supported() bool {
	return t == TypeTheme || t == TypeUI
}

// Item is a single publishable registry entry.
type Item struct {
	Name                 string   `json:"name" yaml:"name" validate:"required,item_name"`
	Type                 ItemType `json:"type" yaml:"type" validate:"required"`
	Title                string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description          string   `json:"description,omitempty" yaml:"description,omitempty"`
	Author               string   `json:"author,omitempty" yaml:"author,omitempty"`
	Dependencies         []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	RegistryDependencies []string `json:"registryDependencies,omitempty" yaml:"registryDependencies,omitempty"`
}

// Validate checks the item's required fields and name syntax.
func (i Item) Validate() error {
	return validatorInstance().Struct(i)
}

// Manifest is the ordered list of registry items.
type Manifest struct {
	Schema   string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Homepage string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Items    []Item `json:"items" yaml:"items"`

	// raw holds the document as read so copies keep every field in order.
	raw []byte
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	itemNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("item_name", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return itemNamePattern.MatchString(name) && name != "." && name != ".."
		})

		validateInst = v
	})

	return validateInst
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.raw = bytes.Clone(data)
	return &m, nil
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - manifest path supplied by operator
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// Pretty returns the manifest as indented JSON, preserving every field of the
// source document in its original order.
func (m *Manifest) Pretty() ([]byte, error) {
	src := m.raw
	if src == nil {
		var err error
		src, err = json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal manifest: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(src), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Find returns the item with the given name.
func (m *Manifest) Find(name string) (Item, bool) {
	for _, item := range m.Items {
		if item.Name == name {
			return item, true
		}
	}
	return Item{}, false
}

// ItemsOfType returns the items with the given type, in manifest order.
func (m *Manifest) ItemsOfType(t ItemType) []Item {
	var items []Item
	for _, item := range m.Items {
		if item.Type == t {
			items = append(items, item)
		}
	}
	return items
}
