package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themeregistry/internal/registry"
)

// itemStatus describes one manifest item and where its source resolves.
type itemStatus struct {
	Name   string            `json:"name" yaml:"name"`
	Type   registry.ItemType `json:"type" yaml:"type"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Source string            `json:"source,omitempty" yaml:"source,omitempty"`
	Status string            `json:"status" yaml:"status"`
}

const (
	statusOK          = "ok"
	statusMissing     = "missing"
	statusUnsupported = "unsupported"
)

func newListCmd(a *app) *cobra.Command {
	var (
		output   string
		itemType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List manifest items",
		Long:  `List shows every manifest item with its resolved source file and whether that file exists.`,
		Example: `  themeregistry list
  themeregistry list --type registry:theme --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := registry.LoadManifest(a.cfg.Manifest)
			if err != nil {
				return err
			}

			items := manifest.Items
			if itemType != "" {
				items = manifest.ItemsOfType(registry.ItemType(itemType))
			}

			statuses := make([]itemStatus, 0, len(items))
			for _, item := range items {
				statuses = append(statuses, describeItem(item, a.cfg.Resolver()))
			}

			return writeItems(cmd.OutOrStdout(), output, statuses)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json, yaml)")
	cmd.Flags().StringVar(&itemType, "type", "", "only list items of this type")

	return cmd
}

func describeItem(item registry.Item, resolver registry.Resolver) itemStatus {
	st := itemStatus{Name: item.Name, Type: item.Type, Title: item.Title}

	src, err := resolver.Resolve(item)
	if err != nil {
		st.Status = statusUnsupported
		return st
	}
	st.Source = src

	if _, err := os.Stat(src); err != nil {
		st.Status = statusMissing
		return st
	}
	st.Status = statusOK
	return st
}

func writeItems(w io.Writer, format string, items []itemStatus) error {
	if format != "table" && format != "" {
		return writeStructured(w, format, items)
	}

	table := NewTable("NAME", "TYPE", "TITLE", "SOURCE", "STATUS")
	table.SetColumnMaxWidth(2, 32)
	for _, it := range items {
		table.AddRow(it.Name, string(it.Type), it.Title, it.Source, it.Status)
	}
	_, err := io.WriteString(w, table.Render())
	return err
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
}
