package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ListProductsRequest is the query of GET /products. Prices stay strings
// until parsed so that a malformed amount is reported by name.
type ListProductsRequest struct {
	Page       int     `query:"page"`
	Limit      int     `query:"limit"`
	Search     string  `query:"search"`
	CategoryID string  `query:"categoryId"`
	MinPrice   string  `query:"minPrice"`
	MaxPrice   string  `query:"maxPrice"`
	MinRating  float64 `query:"minRating"`
	SortBy     string  `query:"sortBy"`
	SortOrder  string  `query:"sortOrder"`
}

func (r *ListProductsRequest) filter() (*entity.ProductFilter, error) {
	filter := &entity.ProductFilter{
		Page:       r.Page,
		Limit:      r.Limit,
		Search:     r.Search,
		CategoryID: r.CategoryID,
		MinRating:  r.MinRating,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
	}

	var err error
	if filter.MinPrice, err = parseAmount("minPrice", r.MinPrice); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = parseAmount("maxPrice", r.MaxPrice); err != nil {
		return nil, err
	}

	return filter, nil
}

func parseAmount(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(field + ": decimal")
	}

	return &amount, nil
}

// ListProducts returns one catalog page.
func (h *CartHandler) ListProducts(c echo.Context) error {
	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid catalog query")
	}

	filter, err := req.filter()
	if err != nil {
		return errors.WithStack(err)
	}

	page, err := h.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// GetProduct returns one product with its current stock.
func (h *CartHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), entity.ID(c.Param("id")))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}
