package main

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/errors"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCommand(opts *RootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cart and session over a local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.configure = append(opts.configure, withPort(port))
			}

			return serve(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (defaults to http.port)")

	return cmd
}

func serve(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	var logger *slog.Logger
	app := fx.New(
		coreOptions(opts, cmd.ErrOrStderr()),
		injectHandler(),
		injectDelivery(),
		fx.Populate(&logger),
		fx.Invoke(loadState),
		fx.Invoke(startServer),
	)
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "start storefront server")
	}

	var exitCode int
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case sig := <-app.Wait():
		exitCode = sig.ExitCode
	}

	if err := app.Stop(context.WithoutCancel(ctx)); err != nil {
		return errors.Wrap(err, "stop storefront server")
	}
	if exitCode != 0 {
		return errors.Errorf("server exited with code %d", exitCode)
	}

	return nil
}

func withPort(port int) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.HTTP.Port = port
	}
}
