package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/themeregistry/internal/registry"
	"github.com/jmylchreest/themeregistry/internal/selection"
	"github.com/jmylchreest/themeregistry/internal/tui/picker"
)

// themeSession is a selection store backed by the local state file.
type themeSession struct {
	store *selection.Store
	doc   *selection.BodyDocument
	state *selection.FileStorage
}

// openThemeSession builds the catalog from the manifest when it can be read,
// falling back to the built-in catalog.
func (a *app) openThemeSession(bodyClass string) (*themeSession, error) {
	catalog := selection.DefaultCatalog()
	if manifest, err := registry.LoadManifest(a.cfg.Manifest); err == nil {
		catalog = selection.CatalogFromManifest(manifest)
	} else {
		a.logger.Debug("using built-in theme catalog", "reason", err)
	}

	path := a.cfg.StateFile
	if path == "" {
		var err error
		if path, err = selection.DefaultStatePath(); err != nil {
			return nil, err
		}
	}

	state := selection.NewFileStorage(path)
	doc := selection.NewBodyDocument(bodyClass)
	return &themeSession{
		store: selection.NewStore(catalog, doc, state, a.logger),
		doc:   doc,
		state: state,
	}, nil
}

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the selected theme",
		Long: `Manage the persisted theme selection. The selection is stored in a state file
(default $XDG_STATE_HOME/themeregistry/state.json) under the key "selectedTheme".`,
	}

	cmd.PersistentFlags().String("state-file", "", "theme selection state file")

	cmd.AddCommand(
		newThemeGetCmd(a),
		newThemeSetCmd(a),
		newThemeListCmd(a),
		newThemePickCmd(a),
	)
	return cmd
}

func newThemeGetCmd(a *app) *cobra.Command {
	var bodyClass string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the selected theme",
		Long: `Get restores the selection: a persisted theme wins, then a theme-<id> class
given with --class, then the default theme.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openThemeSession(bodyClass)
			if err != nil {
				return err
			}
			session.store.LoadTheme()

			info := session.store.GetThemeInfo(session.store.Active())
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", info.ID, info.Name)
			if class := session.doc.BodyClass(); class != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "class\t%s\n", class)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bodyClass, "class", "", "body class to restore from when nothing is persisted")
	return cmd
}

func newThemeSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <theme-id>",
		Short: "Select and persist a theme",
		Long:  `Set selects a theme by id. Unknown ids fall back to the default theme.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newConsole(cmd.OutOrStdout(), a.quiet)

			session, err := a.openThemeSession("")
			if err != nil {
				return err
			}

			session.store.SetTheme(args[0])
			active := session.store.Active()
			if active != args[0] {
				out.warn("Unknown theme %q, using %s", args[0], active)
			}

			out.success("Selected %s (saved to %s)", session.store.GetThemeInfo(active).Name, session.state.Path())
			return nil
		},
	}
}

func newThemeListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List selectable themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openThemeSession("")
			if err != nil {
				return err
			}
			session.store.LoadTheme()

			table := NewTable("", "ID", "NAME", "DESCRIPTION")
			table.SetColumnMaxWidth(3, 48)
			for _, info := range session.store.Catalog() {
				marker := ""
				if info.ID == session.store.Active() {
					marker = "*"
				}
				table.AddRow(marker, info.ID, info.Name, info.Description)
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
}

func newThemePickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a theme interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) { // #nosec G115
				return errors.New("theme pick needs an interactive terminal; use `theme set` instead")
			}

			session, err := a.openThemeSession("")
			if err != nil {
				return err
			}
			session.store.LoadTheme()

			id, ok, err := picker.Run(commandContext(cmd), session.store.Catalog(), session.store.Active(), os.Stdin, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			out := newConsole(cmd.OutOrStdout(), a.quiet)
			if !ok {
				out.println("No change")
				return nil
			}

			session.store.SetTheme(id)
			out.success("Selected %s", session.store.GetThemeInfo(session.store.Active()).Name)
			return nil
		},
	}
}
