package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/labstack/echo/v4"
)

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID entity.ID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// SetQuantityRequest is the body of PUT /cart/items/:productId.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineView is one cart row with its computed subtotal.
type CartLineView struct {
	entity.CartLineItem
	Subtotal   string `json:"subtotal"`
	OutOfStock bool   `json:"outOfStock,omitempty"`
}

// CartView is the cart as returned by every cart endpoint.
type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice string         `json:"totalPrice"`
}

// CartHandler exposes the cart engine.
type CartHandler struct {
	cart    usecase.CartUsecase
	catalog service.CatalogAPI
	logger  *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(cart usecase.CartUsecase, catalog service.CatalogAPI, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		logger:  logger,
	}
}

// GetCart returns the current cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.view(), "")
}

// AddItem resolves the product for fresh stock and adds it.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input AddItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	ctx := c.Request().Context()

	product, err := h.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	change, err := h.cart.AddItem(ctx, product, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Added to cart"
	if change.Clamped {
		message = "Quantity limited to available stock"
	}

	return response.Success(c, http.StatusCreated, h.view(), message)
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var input SetQuantityRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	change := h.cart.SetQuantity(c.Request().Context(), entity.ID(c.Param("productId")), input.Quantity)

	message := "Cart updated"
	switch {
	case change == nil:
		message = "Item not in cart"
	case change.Removed:
		message = "Removed from cart"
	case change.Clamped:
		message = "Quantity limited to available stock"
	}

	return response.Success(c, http.StatusOK, h.view(), message)
}

// RemoveItem drops a line. Removing an absent line succeeds.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	h.cart.RemoveItem(c.Request().Context(), entity.ID(c.Param("productId")))

	return response.Success(c, http.StatusOK, h.view(), "Removed from cart")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	h.cart.Clear(c.Request().Context())

	return response.Success(c, http.StatusOK, h.view(), "Cart cleared")
}

// GetProduct looks up a catalog product with its current stock.
func (h *CartHandler) view() *CartView {
	items := h.cart.Items()

	view := &CartView{
		Items:      make([]CartLineView, 0, len(items)),
		TotalItems: h.cart.TotalItemCount(),
		TotalPrice: util.FormatPrice(h.cart.TotalPrice()),
	}
	for _, item := range items {
		view.Items = append(view.Items, CartLineView{
			CartLineItem: item,
			Subtotal:     util.FormatPrice(item.Subtotal()),
			OutOfStock:   item.OutOfStock(),
		})
	}

	return view
}
