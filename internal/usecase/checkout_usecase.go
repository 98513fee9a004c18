package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CheckoutUsecase turns the current cart into a backend order.
type CheckoutUsecase interface {
	// ShippingDefaults prefills the checkout form from the signed-in user and
	// the saved customer profile, when one exists.
	ShippingDefaults(ctx context.Context) (*entity.ShippingDetails, error)
	PlaceOrder(ctx context.Context, details *entity.ShippingDetails) (*entity.Order, error)
	// OrderHistory lists the signed-in user's past orders, newest first.
	OrderHistory(ctx context.Context) ([]entity.Order, error)
}
