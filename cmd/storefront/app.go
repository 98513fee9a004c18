package main

import (
	"context"
	"io"
	"log/slog"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/http"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/service"
	"storefront/internal/infra/api"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/navigation"
	"storefront/internal/infra/persistence/kv"
	"storefront/internal/infra/storage"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// appDeps is what a single command needs from the container.
type appDeps struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Cart       usecase.CartUsecase
	Session    usecase.SessionUsecase
	Checkout   usecase.CheckoutUsecase
	Catalog    service.CatalogAPI
	Authorizer service.RequestAuthorizer
	Inspector  service.TokenInspector
}

type startServerParams struct {
	fx.In

	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

// coreOptions wires everything a command needs except the delivery layer.
func coreOptions(opts *RootOptions, stderr io.Writer) fx.Option {
	return fx.Options(
		injectInfra(opts, stderr),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			if !opts.Verbose {
				return fxevent.NopLogger
			}

			return &fxevent.SlogLogger{Logger: logger}
		}),
	)
}

func injectInfra(opts *RootOptions, stderr io.Writer) fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			fx.Annotate(
				func() io.Writer { return stderr },
				fx.ResultTags(`name:"logOutput"`),
			),
		),
		fx.Decorate(opts.decorateConfig),
		storage.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			kv.NewCartRepository,
			kv.NewSessionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			api.NewRequestAuthorizer,
			auth.NewJWTInspector,
			navigation.NewNavigator,
			fx.Annotate(
				api.NewClient,
				fx.As(new(service.AuthAPI)),
				fx.As(new(service.CatalogAPI)),
				fx.As(new(service.OrderAPI)),
			),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCartService,
			impl.NewSessionService,
			impl.NewCheckoutService,
		),
	)
}

// injectPrompt sends logout hints to the terminal. The HTTP server has no prompt.
func injectPrompt(w io.Writer) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func() io.Writer { return w },
			fx.ResultTags(`name:"loginPrompt"`),
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCartHandler,
			handler.NewSessionHandler,
			handler.NewCheckoutHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// loadState hydrates the cart and restores the session, the start of every run.
func loadState(ctx context.Context, cart usecase.CartUsecase, session usecase.SessionUsecase) {
	cart.Load(ctx)
	session.Load(ctx)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				params.Logger.Error("Failed to start server", slog.Any("error", err))
				_ = params.Shutdowner.Shutdown(fx.ExitCode(1))
			}
		}()
	}
}
