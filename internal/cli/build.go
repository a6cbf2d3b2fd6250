package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeregistry/internal/registry"
	"github.com/jmylchreest/themeregistry/internal/themecss"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		precompress bool
		withCSS     bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Copy registry items into the static output tree",
		Long: `Build reads the registry manifest, writes a formatted copy of it and copies
every theme and UI item definition into the output directory as <name>.json.

Items whose source file cannot be found or whose type is unsupported are
reported and skipped; the build still succeeds.`,
		Example: `  themeregistry build
  themeregistry build --output-dir public/r --precompress
  themeregistry build --css`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newConsole(cmd.OutOrStdout(), a.quiet)

			builder := registry.NewBuilder(registry.BuildOptions{
				ManifestPath: a.cfg.Manifest,
				ManifestOut:  a.cfg.ManifestOut,
				OutputDir:    a.cfg.OutputDir,
				Resolver:     a.cfg.Resolver(),
				Precompress:  precompress,
			}, a.logger)

			report, err := builder.Build(commandContext(cmd))
			if err != nil {
				return err
			}

			if report.ManifestOut != "" {
				out.success("Wrote manifest %s", report.ManifestOut)
			}
			for _, path := range report.Built {
				out.success("Built %s", path)
			}
			for _, skipped := range report.Skipped {
				out.warn("Skipped %s (%s): %v", skipped.Name, skipped.Type, skipped.Reason)
			}
			if len(report.Compressed) > 0 {
				out.success("Precompressed %d file(s)", len(report.Compressed))
			}

			if withCSS {
				gen := &themecss.Generator{
					ThemesDir: a.cfg.ThemesDir,
					Output:    a.cfg.CSSOutput,
					Logger:    a.logger,
				}
				count, err := gen.Run()
				if err != nil {
					return err
				}
				out.success("Generated %s from %d theme(s)", a.cfg.CSSOutput, count)
			}

			out.println("\nBuilt %d item(s), skipped %d", len(report.Built), len(report.Skipped))
			return nil
		},
	}

	cmd.Flags().String("output-dir", "", "directory to write item documents to")
	cmd.Flags().String("manifest-out", "", "path to write the formatted manifest copy to")
	cmd.Flags().String("css-output", "", "stylesheet path used with --css")
	cmd.Flags().BoolVar(&precompress, "precompress", false, "also write .gz and .xz siblings for static hosting")
	cmd.Flags().BoolVar(&withCSS, "css", false, "regenerate the theme stylesheet after building")

	return cmd
}

func newCSSCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Generate the light/dark theme stylesheet",
		Long: `Generate reads every theme definition in the themes directory, sorted by file
name, and writes one stylesheet with a .theme-<name> rule for light variables
and a .dark .theme-<name> rule for dark variables.

Any unreadable or malformed theme aborts the run without writing.

With --watch the stylesheet is regenerated whenever a theme file changes
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newConsole(cmd.OutOrStdout(), a.quiet)

			gen := &themecss.Generator{
				ThemesDir: a.cfg.ThemesDir,
				Output:    a.cfg.CSSOutput,
				Logger:    a.logger,
			}

			if watch {
				ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
				defer stop()

				out.println("Watching %s (Ctrl+C to stop)", a.cfg.ThemesDir)
				return gen.Watch(ctx, themecss.DefaultDebounce, func(count int, err error) {
					if err != nil {
						out.fail("Failed to generate stylesheet: %v", err)
						return
					}
					out.success("Generated %s from %d theme(s)", a.cfg.CSSOutput, count)
				})
			}

			count, err := gen.Run()
			if err != nil {
				return err
			}

			out.success("Generated %s from %d theme(s)", a.cfg.CSSOutput, count)
			return nil
		},
	}

	cmd.Flags().String("css-output", "", "stylesheet output path")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when theme files change")

	return cmd
}
