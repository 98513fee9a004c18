// Package navigation implements the routing side effect of a logout for
// headless front ends.
package navigation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"storefront/internal/domain/service"

	"go.uber.org/fx"
)

const loginHint = "You have been signed out. Run `storefront login` to sign in again."

// Params holds dependencies for the navigator, injected by Fx
type Params struct {
	fx.In

	Logger *slog.Logger
	// Prompt receives the login hint. The HTTP server leaves it unset and
	// reports the session state through GET /session instead.
	Prompt io.Writer `name:"loginPrompt" optional:"true"`
}

type loginNavigator struct {
	logger *slog.Logger
	prompt io.Writer
}

// NewNavigator creates the navigator used by the session store on logout.
func NewNavigator(params Params) service.Navigator {
	return &loginNavigator{logger: params.Logger, prompt: params.Prompt}
}

func (n *loginNavigator) ToLogin(ctx context.Context) {
	n.logger.InfoContext(ctx, "Navigating to login")

	if n.prompt != nil {
		fmt.Fprintln(n.prompt, loginHint)
	}
}
