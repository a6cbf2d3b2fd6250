package registry

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jmylchreest/themeregistry/internal/security"
	"github.com/jmylchreest/themeregistry/internal/theme"
)

// ErrUnsupportedType is returned when an item's type has no naming convention.
var ErrUnsupportedType = errors.New("unsupported item type")

// Resolver maps registry items to their source files by naming convention.
type Resolver struct {
	ThemesDir     string
	ComponentsDir string
}

// Resolve returns the source file path for item. Theme items drop a trailing
// "-theme" from their name; UI items use the name unchanged.
func (r Resolver) Resolve(item Item) (string, error) {
	var dir, stem string

	switch item.Type {
	case TypeTheme:
		dir, stem = r.ThemesDir, theme.StemForItem(item.Name)
	case TypeUI:
		dir, stem = r.ComponentsDir, item.Name
	default:
		return "", fmt.Errorf("%w: %q for %s", ErrUnsupportedType, item.Type, item.Name)
	}

	file := stem + ".json"
	if err := security.ValidateFilePath(file, dir); err != nil {
		return "", fmt.Errorf("invalid item name %q: %w", item.Name, err)
	}

	return filepath.Join(dir, file), nil
}
