package main

import (
	"bufio"
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/util"

	"github.com/spf13/cobra"
)

// whoamiOutput is the JSON shape of `whoami`.
type whoamiOutput struct {
	State         string       `json:"state"`
	Authenticated bool         `json:"authenticated"`
	User          *entity.User `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var input service.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in with email and password. Without --password the password is
read from the first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Password == "" {
				input.Password = readSecret(cmd)
			}

			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				user, err := deps.Session.Login(ctx, &input)
				if err != nil {
					return err
				}

				return printSignedIn(opts.printer(cmd), deps, user)
			})
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "account email")
	cmd.Flags().StringVar(&input.Password, "password", "", "account password")

	return cmd
}

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	var input service.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Password == "" {
				input.Password = readSecret(cmd)
			}

			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				user, err := deps.Session.Register(ctx, &input)
				if err != nil {
					return err
				}

				return printSignedIn(opts.printer(cmd), deps, user)
			})
		},
	}

	cmd.Flags().StringVar(&input.Username, "username", "", "username")
	cmd.Flags().StringVar(&input.Email, "email", "", "account email")
	cmd.Flags().StringVar(&input.Password, "password", "", "account password (at least 6 characters)")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "last name")

	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				deps.Session.Logout(ctx)

				return nil
			})
		},
	}
}

func newWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account once the backend has confirmed it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				if err := deps.Session.WaitForRevalidation(ctx); err != nil {
					return err
				}

				out := whoamiOutput{
					State:         deps.Session.State().String(),
					Authenticated: deps.Session.IsAuthenticated(),
					User:          deps.Session.CurrentUser(),
				}
				if token, ok := deps.Authorizer.Token(); ok {
					if exp, ok := deps.Inspector.ExpiresAt(token); ok {
						out.ExpiresAt = &exp
					}
				}

				p := opts.printer(cmd)
				if p.isJSON() {
					return p.json(out)
				}
				if out.User == nil {
					p.line("Not signed in.")

					return nil
				}

				p.line("%s <%s>", out.User.DisplayName(), out.User.Email)
				if out.ExpiresAt != nil {
					p.line("Session expires in %s.", util.FormatDuration(time.Until(*out.ExpiresAt)))
				}

				return nil
			})
		},
	}
}

func printSignedIn(p *printer, deps appDeps, user *entity.User) error {
	if p.isJSON() {
		return p.json(whoamiOutput{
			State:         deps.Session.State().String(),
			Authenticated: true,
			User:          user,
		})
	}

	p.line("Signed in as %s.", user.DisplayName())

	return nil
}

func readSecret(cmd *cobra.Command) string {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}

	return ""
}
