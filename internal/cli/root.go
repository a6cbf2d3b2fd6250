// Package cli provides the command-line interface for themeregistry.
package cli

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeregistry/internal/config"
	"github.com/jmylchreest/themeregistry/internal/logging"
	"github.com/jmylchreest/themeregistry/internal/version"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configFile string
	verbose    bool
	quiet      bool

	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "themeregistry",
		Short: "Build, import and serve shadcn-style theme registries",
		Long: `themeregistry maintains a shadcn-compatible component registry of themes and
UI items. It copies registry items into a static output tree, generates a
light/dark theme stylesheet, imports themes from remote registries and serves
items over HTTP.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./themeregistry.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().String("manifest", "", "registry manifest path")
	rootCmd.PersistentFlags().String("themes-dir", "", "theme definitions directory")
	rootCmd.PersistentFlags().String("components-dir", "", "UI component definitions directory")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBuildCmd(a),
		newCSSCmd(a),
		newImportCmd(a),
		newServeCmd(a),
		newExportCmd(a),
		newValidateCmd(a),
		newListCmd(a),
		newThemeCmd(a),
	)

	return rootCmd
}

// init resolves configuration and the logger for the command being run.
func (a *app) init(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if err := loader.ReadFile(a.configFile); err != nil {
		return err
	}

	// Only flags the user set override the file and environment.
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:  logging.LevelFor(a.verbose, a.quiet, cfg.LogLevel),
		JSON:   cfg.LogJSON,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger = logger

	if file := loader.ConfigFile(); file != "" {
		logger.Debug("using config file", "path", file)
	}
	return nil
}

// commandContext returns the command context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newVersionCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, build date, Go version and platform of this binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "text" || output == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return err
			}
			return writeStructured(cmd.OutOrStdout(), output, version.Get())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}
