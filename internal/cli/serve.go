package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeregistry/internal/server"
)

func newServer(a *app, withCSS bool) (*server.Server, error) {
	opts := server.Options{
		Addr:         a.cfg.Addr,
		ManifestPath: a.cfg.Manifest,
		Resolver:     a.cfg.Resolver(),
	}
	if withCSS {
		opts.ThemesDir = a.cfg.ThemesDir
	}
	return server.New(opts, a.logger)
}

func newServeCmd(a *app) *cobra.Command {
	var noCSS bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve registry items over HTTP",
		Long: `Serve exposes every resolvable registry item at /api/r/<name>, the manifest at
/registry.json, the generated stylesheet at /themes.css and a theme preview
page at /. Unknown items return 404 with {"message": "Registry item not found"}.`,
		Example: `  themeregistry serve
  themeregistry serve --addr 127.0.0.1:3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := newServer(a, !noCSS)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			newConsole(cmd.OutOrStdout(), a.quiet).success("Serving %d item(s) on %s", len(srv.Entries()), a.cfg.Addr)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().BoolVar(&noCSS, "no-css", false, "do not serve /themes.css")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write the servable items as a static /api/r tree",
		Long: `Export writes every item the server would answer for to <dir>/api/r/<name>,
so the endpoint can be hosted by any static file server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newConsole(cmd.OutOrStdout(), a.quiet)

			srv, err := newServer(a, false)
			if err != nil {
				return err
			}

			written, err := srv.Export(args[0])
			for _, path := range written {
				out.success("Exported %s", path)
			}
			return err
		},
	}

	return cmd
}
