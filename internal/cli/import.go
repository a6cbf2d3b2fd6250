package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeregistry/internal/importer"
	"github.com/jmylchreest/themeregistry/internal/theme"
)

// errThemeNameRequired is returned before any network access when no name is given.
var errThemeNameRequired = errors.New("please provide a theme name")

func newImportCmd(a *app) *cobra.Command {
	var (
		allowMissing bool
		allowLocal   bool
	)

	cmd := &cobra.Command{
		Use:   "import <theme-name>",
		Short: "Import a theme from a remote registry",
		Long: `Import fetches the remote registry once, converts the named theme into a local
theme definition and writes it to <themes-dir>/<theme-name>.json.

Colour tokens missing from the remote theme abort the import unless
--allow-missing is set, in which case they are left out.`,
		Example: `  themeregistry import catppuccin
  themeregistry import amethyst-haze --import-url https://example.com/r/registry.json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errThemeNameRequired
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := newConsole(cmd.OutOrStdout(), a.quiet)

			imp := importer.New(importer.Options{
				RegistryURL:  a.cfg.ImportURL,
				ThemesDir:    a.cfg.ThemesDir,
				Timeout:      a.cfg.ImportTimeout,
				AllowMissing: allowMissing,
				AllowLocal:   allowLocal,
			}, a.logger)

			out.println("Fetching registry from %s", a.cfg.ImportURL)

			result, err := imp.Import(commandContext(cmd), name)
			if err != nil {
				var notFound *importer.NotFoundError
				if errors.As(err, &notFound) {
					printAvailable(out, notFound)
				}
				var missing *importer.MissingTokensError
				if errors.As(err, &missing) {
					out.fail("Theme %q is missing: %s", missing.Name, strings.Join(missing.Tokens, ", "))
					out.println("Re-run with --allow-missing to import it without those tokens.")
				}
				return err
			}

			out.success("Imported %s to %s", name, result.Path)
			for _, token := range result.Omitted {
				out.warn("Omitted missing token %s", token)
			}

			out.heading("\nNext steps:")
			out.println("  1. Add an item named %q with type %q to %s", name+theme.NameSuffix, "registry:theme", a.cfg.Manifest)
			out.println("  2. Run `themeregistry css` to regenerate the stylesheet")
			out.println("  3. Run `themeregistry build` to publish it")
			return nil
		},
	}

	cmd.Flags().String("import-url", "", "remote registry URL")
	cmd.Flags().Duration("import-timeout", 0, "timeout for the registry fetch")
	cmd.Flags().BoolVar(&allowMissing, "allow-missing", false, "omit colour tokens the remote theme does not define")
	cmd.Flags().BoolVar(&allowLocal, "allow-local", false, "allow fetching from localhost and private networks")

	return cmd
}

func printAvailable(out *console, err *importer.NotFoundError) {
	out.fail("Theme %q not found in registry", err.Name)
	if len(err.Available) == 0 {
		return
	}
	out.heading("\nAvailable themes:")
	for _, item := range err.Available {
		label := item.Name
		if item.Title != "" {
			label = fmt.Sprintf("%s %s", item.Name, out.muted("("+item.Title+")"))
		}
		// The list is shown even with --quiet since it explains the failure.
		fmt.Fprintf(out.w, "  - %s\n", label)
	}
}
