package middleware

import (
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware extracts or generates the request ID and attaches a request-scoped logger
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process tags the request context with the ID. The same ID is forwarded to
// the backend on every outbound call made while serving the request.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		ctx, requestID := deliverycontext.Scoped(
			req.Context(),
			m.logger,
			req.Header.Get(deliverycontext.HeaderXRequestID),
		)

		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}
