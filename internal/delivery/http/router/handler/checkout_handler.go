package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CheckoutHandler places orders from the cart.
type CheckoutHandler struct {
	checkout usecase.CheckoutUsecase
	logger   *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(checkout usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// GetDefaults returns the prefilled shipping form.
func (h *CheckoutHandler) GetDefaults(c echo.Context) error {
	details, err := h.checkout.ShippingDefaults(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, details, "")
}

// PlaceOrder submits the cart as an order.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	var input entity.ShippingDetails
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shipping details")
	}

	order, err := h.checkout.PlaceOrder(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// ListOrders returns the signed-in user's order history.
func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	orders, err := h.checkout.OrderHistory(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}
