package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// Output formats accepted by --format.
var validFormats = []string{"text", "json"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// configure adjusts the loaded configuration before anything is built from it.
	configure []func(*config.Config)
}

func newRootCommand(configure ...func(*config.Config)) *cobra.Command {
	opts := &RootOptions{configure: configure}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront cart and session client",
		Long: `Storefront keeps a shopping cart and a signed-in session on this machine
and talks to the storefront backend for products, accounts and orders.

Every command reloads the cart and session from local storage, re-validates
a restored session with the backend, and persists changes before exiting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newCartCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newWhoamiCommand(opts))
	cmd.AddCommand(newCheckoutCommand(opts))
	cmd.AddCommand(newProductsCommand(opts))
	cmd.AddCommand(newOrdersCommand(opts))

	return cmd
}

func (o *RootOptions) decorateConfig(cfg *config.Config) *config.Config {
	// Keep the terminal quiet unless asked otherwise.
	switch {
	case o.Verbose:
		cfg.Env.Log.Level = "debug"
	case cfg.Env.Log.Level == "" || cfg.Env.Log.Level == "info":
		cfg.Env.Log.Level = "warn"
	}
	for _, fn := range o.configure {
		fn(cfg)
	}

	return cfg
}

// run builds the container for one command, loads state, runs action and
// shuts down. A restored session is re-validated before exit so that its
// outcome is persisted.
func (o *RootOptions) run(cmd *cobra.Command, action func(ctx context.Context, deps appDeps) error) error {
	ctx := cmd.Context()

	var deps appDeps
	app := fx.New(
		coreOptions(o, cmd.ErrOrStderr()),
		injectPrompt(cmd.ErrOrStderr()),
		fx.Populate(&deps),
		fx.Invoke(loadState),
	)
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "start storefront")
	}

	actionErr := action(ctx, deps)

	if err := deps.Session.WaitForRevalidation(ctx); err != nil {
		deps.Logger.Warn("Session re-validation still pending at exit", slog.Any("error", err))
	}

	stopErr := app.Stop(context.WithoutCancel(ctx))

	return errors.Join(actionErr, stopErr)
}

func printError(w io.Writer, err error) {
	if appErr, ok := domainerrors.AsAppError(err); ok {
		fmt.Fprintf(w, "Error: %s\n", appErr.Message())
		if details := appErr.Details(); details != "" {
			fmt.Fprintf(w, "  %s\n", details)
		}

		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
}

// Exit codes: 1 for failures reported by the store, 2 for anything else.
func exitCode(err error) int {
	if _, ok := domainerrors.AsAppError(err); ok {
		return 1
	}

	return 2
}
