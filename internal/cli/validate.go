package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeregistry/internal/registry"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the manifest and its item sources",
		Long: `Validate checks every manifest item for a valid name and type, duplicate names
and a resolvable source file. Theme sources are also linted for malformed
colours and light/dark asymmetry.

Exits non-zero when errors are found, or when warnings are found with --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newConsole(cmd.OutOrStdout(), a.quiet)

			manifest, err := registry.LoadManifest(a.cfg.Manifest)
			if err != nil {
				return err
			}

			result := registry.ValidateManifest(manifest, a.cfg.Resolver())

			for _, msg := range result.Errors {
				out.fail("%s", msg)
			}
			for _, msg := range result.Warnings {
				out.warn("%s", msg)
			}

			out.println("\n%d item(s): %d theme(s), %d UI, %d error(s), %d warning(s)",
				result.Items, result.Themes, result.UI, len(result.Errors), len(result.Warnings))

			switch {
			case !result.OK():
				return fmt.Errorf("manifest has %d error(s)", len(result.Errors))
			case strict && len(result.Warnings) > 0:
				return fmt.Errorf("manifest has %d warning(s)", len(result.Warnings))
			}

			out.success("%s is valid", a.cfg.Manifest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}
