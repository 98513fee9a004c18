package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/util"
)

func (c *Client) GetCustomerProfile(ctx context.Context) (*entity.Customer, error) {
	raw, err := c.call(ctx, http.MethodGet, "/customers/profile", nil, true)
	if err != nil {
		if remoteErr, ok := domainerrors.AsRemoteError(err); ok && remoteErr.StatusCode == http.StatusNotFound {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, err
	}

	return decodeCustomer(raw)
}

func (c *Client) UpsertCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	raw, err := c.call(ctx, http.MethodPost, "/customers/profile", customer, true)
	if err != nil {
		return nil, err
	}

	return decodeCustomer(raw)
}

func decodeCustomer(raw json.RawMessage) (*entity.Customer, error) {
	raw = member(raw, "customer")

	var customer entity.Customer
	if err := json.Unmarshal(raw, &customer); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}
	if customer.ID.IsZero() {
		var ids wireEntity
		_ = json.Unmarshal(raw, &ids)
		customer.ID = ids.id()
	}
	if customer.ID.IsZero() {
		return nil, domainerrors.ErrInvalidResponse.WithDetails("customer without id")
	}

	return &customer, nil
}

func (c *Client) CreateOrder(ctx context.Context, req *entity.OrderRequest) (*entity.Order, error) {
	raw, err := c.call(ctx, http.MethodPost, "/orders", req, true)
	if err != nil {
		return nil, err
	}

	// Stock conflicts may arrive as a 2xx body carrying an error field.
	var failure errorBody
	if json.Unmarshal(raw, &failure) == nil && failure.Error != "" {
		return nil, domainerrors.NewRemoteError(http.StatusOK, failure.Error, "/orders")
	}

	return c.decodeOrder(member(raw, "order"))
}

// ListOrders returns the order history, sent as a bare array or as {orders}.
func (c *Client) ListOrders(ctx context.Context) ([]entity.Order, error) {
	raw, err := c.call(ctx, http.MethodGet, "/orders", nil, true)
	if err != nil {
		return nil, err
	}

	items, err := listMember(raw, "orders")
	if err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}

	orders := make([]entity.Order, 0, len(items))
	for _, item := range items {
		order, err := c.decodeOrder(item)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, c.logger).Warn("Skipping malformed order", slog.Any("error", err))

			continue
		}
		orders = append(orders, *order)
	}

	return orders, nil
}

func (c *Client) decodeOrder(raw json.RawMessage) (*entity.Order, error) {
	var wire wireOrder
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}

	order := wire.toEntity()
	if err := c.validate.Struct(order); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(util.ValidationDetails(err))
	}

	return order, nil
}
