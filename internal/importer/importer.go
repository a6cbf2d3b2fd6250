// Package importer fetches theme definitions from a remote shadcn-style
// registry and converts them into local theme files.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themeregistry/internal/cssvars"
	"github.com/jmylchreest/themeregistry/internal/security"
	"github.com/jmylchreest/themeregistry/internal/theme"
	httputil "github.com/jmylchreest/themeregistry/internal/util/http"
)

// DefaultRegistryURL is the remote registry themes are imported from.
const DefaultRegistryURL = "https://tweakcn.com/r/registry.json"

// Options configures an Importer.
type Options struct {
	// RegistryURL overrides DefaultRegistryURL.
	RegistryURL string
	// ThemesDir receives the converted theme file.
	ThemesDir string
	// Timeout bounds the single fetch. Zero uses the HTTP default.
	Timeout time.Duration
	// AllowMissing omits absent colour tokens instead of failing.
	AllowMissing bool
	// AllowLocal permits registry URLs on local or private hosts.
	AllowLocal bool
}

// RemoteItem is an entry of the remote registry.
type RemoteItem struct {
	Name        string                    `json:"name"`
	Type        string                    `json:"type,omitempty"`
	Title       string                    `json:"title,omitempty"`
	Description string                    `json:"description,omitempty"`
	CSSVars     map[string]map[string]any `json:"cssVars,omitempty"`
}

// RemoteRegistry is the remote manifest document.
type RemoteRegistry struct {
	Items []RemoteItem `json:"items"`
}

// Result describes a completed import.
type Result struct {
	Path       string
	Definition *theme.Definition
	// Omitted lists tokens left out because the remote did not define them.
	Omitted []string
}

// Importer fetches and converts remote themes.
type Importer struct {
	opts   Options
	logger hclog.Logger
}

// New creates an Importer. A nil logger discards output.
func New(opts Options, logger hclog.Logger) *Importer {
	if opts.RegistryURL == "" {
		opts.RegistryURL = DefaultRegistryURL
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Importer{opts: opts, logger: logger.Named("import")}
}

// Validate checks the importer configuration before any network access.
func (i *Importer) Validate() error {
	if err := security.ValidateFetchURL(i.opts.RegistryURL, i.opts.AllowLocal); err != nil {
		return fmt.Errorf("invalid registry URL: %w", err)
	}
	if i.opts.ThemesDir == "" {
		return fmt.Errorf("themes directory is required")
	}
	return nil
}

// Import fetches the remote registry once, converts the item named name and
// writes it to <ThemesDir>/<name>.json.
func (i *Importer) Import(ctx context.Context, name string) (*Result, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("theme name is required")
	}
	if err := security.ValidateFilePath(name+theme.FileExt, i.opts.ThemesDir); err != nil {
		return nil, fmt.Errorf("invalid theme name %q: %w", name, err)
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}

	registry, err := i.FetchRegistry(ctx)
	if err != nil {
		return nil, err
	}

	remote, ok := registry.Find(name)
	if !ok {
		return nil, &NotFoundError{Name: name, Available: registry.Items}
	}

	def, omitted, err := Convert(remote, name, i.opts.AllowMissing)
	if err != nil {
		return nil, err
	}
	for _, token := range omitted {
		i.logger.Warn("remote theme does not define token, omitting", "theme", name, "token", token)
	}

	data, err := theme.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme: %w", err)
	}

	if err := os.MkdirAll(i.opts.ThemesDir, 0o755); err != nil { // #nosec G301
		return nil, fmt.Errorf("failed to create themes directory: %w", err)
	}

	path := filepath.Join(i.opts.ThemesDir, name+theme.FileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306
		return nil, fmt.Errorf("failed to write theme: %w", err)
	}

	i.logger.Info("theme saved", "theme", name, "path", path)
	return &Result{Path: path, Definition: def, Omitted: omitted}, nil
}

// FetchRegistry performs the single fetch of the remote registry.
func (i *Importer) FetchRegistry(ctx context.Context) (*RemoteRegistry, error) {
	i.logger.Debug("fetching remote registry", "url", i.opts.RegistryURL)

	content, err := httputil.Fetch(ctx, i.opts.RegistryURL, httputil.FetchOptions{
		Timeout: i.opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote registry: %w", err)
	}

	var registry RemoteRegistry
	if err := json.Unmarshal(content, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse remote registry: %w", err)
	}

	i.logger.Debug("fetched remote registry", "bytes", len(content), "items", len(registry.Items))
	return &registry, nil
}

// Find returns the item whose name matches exactly.
func (r *RemoteRegistry) Find(name string) (RemoteItem, bool) {
	for _, item := range r.Items {
		if item.Name == name {
			return item, true
		}
	}
	return RemoteItem{}, false
}

// stringVar returns a string token from a remote group.
func (r RemoteItem) stringVar(group, key string) (string, bool) {
	vars, ok := r.CSSVars[group]
	if !ok {
		return "", false
	}
	s, ok := vars[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Convert maps a remote item onto the local theme schema under name.
// Missing theme tokens take defaults. Missing colour tokens fail with
// MissingTokensError unless allowMissing is set, in which case they are
// omitted and returned as "<group>.<token>".
func Convert(remote RemoteItem, name string, allowMissing bool) (*theme.Definition, []string, error) {
	def := &theme.Definition{
		Schema:      theme.SchemaURL,
		Name:        name + theme.NameSuffix,
		Type:        theme.ItemType,
		Title:       remote.Title,
		Description: remote.Description,
	}

	tokens := cssvars.New()
	for _, d := range ThemeDefaults {
		value, ok := remote.stringVar("theme", d.Key)
		if !ok {
			value = d.Value
		}
		tokens.Set(d.Key, value)
	}
	def.CSSVars.Theme = tokens

	var missing []string
	def.CSSVars.Light, missing = copyColours(remote, "light", missing)
	def.CSSVars.Dark, missing = copyColours(remote, "dark", missing)

	if len(missing) > 0 && !allowMissing {
		return nil, nil, &MissingTokensError{Name: name, Tokens: missing}
	}

	return def, missing, nil
}

func copyColours(remote RemoteItem, group string, missing []string) (*cssvars.Vars, []string) {
	vars := cssvars.New()
	for _, key := range ColourTokens {
		value, ok := remote.stringVar(group, key)
		if !ok {
			missing = append(missing, group+"."+key)
			continue
		}
		vars.Set(key, value)
	}
	return vars, missing
}
