package cli

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/todod/internal/api"
	"github.com/roach88/todod/internal/config"
	"github.com/roach88/todod/internal/logging"
	"github.com/roach88/todod/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	DB   DatabaseFlags
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the to-do list HTTP API until interrupted.

The database and its tables are created on first start. On SIGINT or
SIGTERM the server stops accepting connections and waits up to
server.shutdown_timeout for in-flight requests before closing the database.

Examples:
  todod serve
  todod serve --addr 127.0.0.1:8080 --db /var/lib/todod/todos.db
  todod serve --driver sqlite --config todod.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")
	opts.DB.register(cmd)

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions, cmd *cobra.Command) error {
	overrides := opts.DB.overrides(cmd)
	if cmd.Flags().Changed("addr") {
		addr := opts.Addr
		overrides = append(overrides, func(c *config.Config) { c.Server.Addr = addr })
	}

	cfg, err := opts.loadConfig(overrides...)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, opts.Verbose)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build logger", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(cfg.Database.Path,
		store.WithDriver(cfg.Database.Driver),
		store.WithBusyTimeout(cfg.Database.BusyTimeout),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
	}()
	logger.Info("database ready",
		zap.String("path", st.Path()),
		zap.String("driver", cfg.Database.Driver),
		zap.Bool("created", st.Created()),
	)

	srv := api.NewServer(st,
		api.WithLogger(logger),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to listen", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Serve(ctx, ln, srv.Handler(), cfg.Server, logger); err != nil {
		return WrapExitError(ExitFailure, "server stopped with error", err)
	}
	logger.Info("server stopped")
	return nil
}
