package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/util"
)

func (c *Client) GetProduct(ctx context.Context, id entity.ID) (*entity.Product, error) {
	raw, err := c.call(ctx, http.MethodGet, "/products/"+url.PathEscape(id.String()), nil, false)
	if err != nil {
		if remoteErr, ok := domainerrors.AsRemoteError(err); ok && remoteErr.StatusCode == http.StatusNotFound {
			return nil, domainerrors.ErrProductNotFound.WithDetails(id.String())
		}

		return nil, err
	}

	return c.decodeProduct(member(raw, "product"))
}

// ListProducts fetches one catalog page. The backend answers either with
// {products, totalPages, currentPage, totalItems} or with a bare array.
func (c *Client) ListProducts(ctx context.Context, filter *entity.ProductFilter) (*entity.ProductPage, error) {
	if filter != nil {
		if err := c.validate.Struct(filter); err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails(util.ValidationDetails(err))
		}
	}

	path := "/products"
	if query := productQuery(filter).Encode(); query != "" {
		path += "?" + query
	}

	raw, err := c.call(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return nil, err
	}

	items, err := listMember(raw, "products")
	if err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}

	page := &entity.ProductPage{Products: make([]entity.Product, 0, len(items))}
	for _, item := range items {
		product, err := c.decodeProduct(item)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, c.logger).Warn("Skipping malformed catalog entry", slog.Any("error", err))

			continue
		}
		page.Products = append(page.Products, *product)
	}

	var paging struct {
		TotalPages  int `json:"totalPages"`
		CurrentPage int `json:"currentPage"`
		TotalItems  int `json:"totalItems"`
	}
	if isObject(raw) {
		_ = json.Unmarshal(raw, &paging)
	}
	page.TotalPages = max(paging.TotalPages, 1)
	page.CurrentPage = max(paging.CurrentPage, 1)
	page.TotalItems = paging.TotalItems
	if page.TotalItems == 0 {
		page.TotalItems = len(page.Products)
	}

	return page, nil
}

func (c *Client) decodeProduct(raw json.RawMessage) (*entity.Product, error) {
	var product entity.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}
	if product.ID.IsZero() {
		var ids wireEntity
		_ = json.Unmarshal(raw, &ids)
		product.ID = ids.id()
	}
	if err := c.validate.Struct(&product); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(util.ValidationDetails(err))
	}

	return &product, nil
}

func productQuery(filter *entity.ProductFilter) url.Values {
	query := url.Values{}
	if filter == nil {
		return query
	}

	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.CategoryID != "" {
		query.Set("categoryId", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query.Set("minPrice", filter.MinPrice.String())
	}
	if filter.MaxPrice != nil {
		query.Set("maxPrice", filter.MaxPrice.String())
	}
	if filter.MinRating > 0 {
		query.Set("minRating", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}
	if filter.SortBy != "" {
		query.Set("sortBy", filter.SortBy)
	}
	if filter.SortOrder != "" {
		query.Set("sortOrder", filter.SortOrder)
	}

	return query
}
