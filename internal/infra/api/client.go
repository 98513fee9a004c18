// Package api is the HTTP client for the storefront backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/fx"
)

const maxResponseBytes = 1 << 20

// reply is a fully read backend response.
type reply struct {
	status int
	body   []byte
}

// Client talks to the backend through a circuit breaker. It implements
// service.AuthAPI, service.CatalogAPI and service.OrderAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*reply]
	authorizer service.RequestAuthorizer
	validate   *validator.Validate
	logger     *slog.Logger
}

// ClientParams holds dependencies for Client, injected by Fx
type ClientParams struct {
	fx.In

	Config     *config.Config
	Authorizer service.RequestAuthorizer
	Logger     *slog.Logger
}

// NewClient creates the backend client from the backend config section.
func NewClient(params ClientParams) (*Client, error) {
	cfg := params.Config.Backend
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("backend.baseUrl is required")
	}

	return newClient(cfg, params.Authorizer, params.Logger, &http.Client{Timeout: cfg.Timeout}), nil
}

func newClient(cfg *config.BackendConfig, authorizer service.RequestAuthorizer, logger *slog.Logger, httpClient *http.Client) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		authorizer: authorizer,
		validate:   util.NewValidator(),
		logger:     logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[*reply](breakerSettings(cfg.Breaker, logger))

	return c
}

func breakerSettings(cfg *config.BreakerConfig, logger *slog.Logger) gobreaker.Settings {
	var (
		maxRequests uint32 = 1
		interval    time.Duration
		openTimeout        = 30 * time.Second
		failures    uint32 = 5
	)
	if cfg != nil {
		if cfg.MaxRequests > 0 {
			maxRequests = cfg.MaxRequests
		}
		interval = cfg.Interval
		if cfg.OpenTimeout > 0 {
			openTimeout = cfg.OpenTimeout
		}
		if cfg.ConsecutiveFailures > 0 {
			failures = cfg.ConsecutiveFailures
		}
	}

	return gobreaker.Settings{
		Name:        "storefront-backend",
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about backend health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Backend circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}
}

// call performs one request and returns the unwrapped success payload.
// Non-2xx answers come back as *domainerrors.RemoteError.
func (c *Client) call(ctx context.Context, method, path string, payload any, protected bool) (json.RawMessage, error) {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		body = encoded
	}

	res, err := c.breaker.Execute(func() (*reply, error) {
		return c.roundTrip(ctx, method, path, body, protected)
	})
	if err != nil {
		if _, ok := domainerrors.AsRemoteError(err); ok {
			return nil, err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, domainerrors.ErrBackendUnavailable.WithDetails(path)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.WithStack(ctxErr)
		}

		return nil, errors.Wrap(domainerrors.ErrRequestFailed.WithDetails(err.Error()), path)
	}

	if res.status < 200 || res.status >= 300 {
		return nil, remoteError(res, path)
	}

	if len(bytes.TrimSpace(res.body)) == 0 {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(path + ": empty body")
	}

	return unwrapData(res.body), nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, protected bool) (*reply, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := deliverycontext.RequestIDOrNew(ctx)
	req.Header.Set(deliverycontext.HeaderXRequestID, requestID)

	var token string
	credentialed := false
	if protected {
		token, credentialed = c.authorizer.Token()
		if credentialed {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, c.logger)
	logger.Debug("Calling backend",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
		slog.Bool("credentialed", credentialed),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	res := &reply{status: resp.StatusCode, body: data}

	if credentialed && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		logger.Warn("Backend rejected credential",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", requestID),
		)
		c.authorizer.Reject(ctx, token, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return res, remoteError(res, path)
	}

	return res, nil
}

func remoteError(res *reply, path string) error {
	var payload errorBody
	_ = json.Unmarshal(res.body, &payload)

	return domainerrors.NewRemoteError(res.status, payload.text(), path)
}
