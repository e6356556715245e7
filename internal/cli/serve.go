package cli

import (
	"github.com/spf13/cobra"

	"github.com/jverdier/coursemap/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config string // config file path
	addr   string // listen address, overrides the config value
}

// newServeCmd creates the serve command. The server exposes the read-only
// share surface: resolving tokens and issuing or revoking links for stored
// documents. It runs until the process is interrupted.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only share HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (coursemap.toml if present)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	addr := cfg.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	shareStore, err := openShareStore(ctx, cfg.Shares)
	if err != nil {
		return err
	}
	defer shareStore.Close()

	mgr, err := newShareManager(cfg, shareStore)
	if err != nil {
		return err
	}

	logger.Infof("Serving shares on %s (store: %s, shares: %s)",
		addr, cfg.Store.Backend, cfg.Shares.Backend)

	srv := server.New(st, mgr, server.WithLogger(logger))
	return srv.ListenAndServe(ctx, addr)
}
