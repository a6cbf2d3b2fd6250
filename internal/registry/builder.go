package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themeregistry/internal/compression"
)

// BuildOptions configures a registry build.
type BuildOptions struct {
	// ManifestPath is the source manifest.
	ManifestPath string
	// ManifestOut receives a formatted copy of the manifest.
	ManifestOut string
	// OutputDir receives one <name>.json per resolved item.
	OutputDir string
	// Resolver maps items to source files.
	Resolver Resolver
	// Precompress writes compressed siblings for every output file.
	Precompress bool
}

// SkippedItem records an item that was not built and why.
type SkippedItem struct {
	Name   string
	Type   ItemType
	Reason error
}

// Report summarises a build.
type Report struct {
	ManifestOut string
	Built       []string
	Skipped     []SkippedItem
	Compressed  []string
}

// Builder copies manifest items into a flat static directory.
type Builder struct {
	opts   BuildOptions
	logger hclog.Logger
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(opts BuildOptions, logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{opts: opts, logger: logger.Named("registry")}
}

// Build runs the registry build. Failure to read the manifest, create the
// output directory or write the manifest copy is fatal. Items that cannot be
// resolved or read are logged, recorded in the report and skipped.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	manifest, err := LoadManifest(b.opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(b.opts.OutputDir, 0o755); err != nil { // #nosec G301 - static output is world readable
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	report := &Report{ManifestOut: b.opts.ManifestOut}

	if b.opts.ManifestOut != "" {
		pretty, err := manifest.Pretty()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(b.opts.ManifestOut), 0o755); err != nil { // #nosec G301
			return nil, fmt.Errorf("failed to create manifest output directory: %w", err)
		}
		if err := os.WriteFile(b.opts.ManifestOut, pretty, 0o644); err != nil { // #nosec G306
			return nil, fmt.Errorf("failed to write manifest copy: %w", err)
		}
		if err := b.compress(b.opts.ManifestOut, pretty, report); err != nil {
			return nil, err
		}
	}

	for _, item := range manifest.Items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		b.logger.Debug("processing item", "name", item.Name, "type", item.Type)

		out, err := b.buildItem(item, report)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedItem{Name: item.Name, Type: item.Type, Reason: err})
			if errors.Is(err, ErrUnsupportedType) {
				b.logger.Warn("unknown item type, skipping", "name", item.Name, "type", item.Type)
			} else {
				b.logger.Error("failed to process item", "name", item.Name, "error", err)
			}
			continue
		}

		report.Built = append(report.Built, out)
		b.logger.Info("built item", "name", item.Name, "path", out)
	}

	return report, nil
}

// buildItem resolves and copies a single item, returning the written path.
func (b *Builder) buildItem(item Item, report *Report) (string, error) {
	if !item.Type.Supported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, item.Type)
	}
	if err := item.Validate(); err != nil {
		return "", fmt.Errorf("invalid item: %w", err)
	}

	src, err := b.opts.Resolver.Resolve(item)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(src) // #nosec G304 - resolved within configured source directories
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}

	out := filepath.Join(b.opts.OutputDir, item.Name+".json")
	if err := os.WriteFile(out, data, 0o644); err != nil { // #nosec G306
		return "", fmt.Errorf("failed to write output: %w", err)
	}

	if err := b.compress(out, data, report); err != nil {
		return "", err
	}

	return out, nil
}

func (b *Builder) compress(path string, data []byte, report *Report) error {
	if !b.opts.Precompress {
		return nil
	}
	written, err := compression.WriteSiblings(path, data, compression.DefaultFormats)
	report.Compressed = append(report.Compressed, written...)
	return err
}
