// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"strconv"
	"strings"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartChange reports what a mutation did to one line item.
type CartChange struct {
	Item      entity.CartLineItem
	Requested int
	// Clamped is set when the resulting quantity differs from what was asked for.
	Clamped bool
	// Removed is set when the line item left the cart.
	Removed bool
}

// CartUsecase is the cart engine. Reads are served from memory; every
// mutation is persisted as a full snapshot before it returns.
type CartUsecase interface {
	// Load hydrates the cart from storage. Missing or corrupt state yields an empty cart.
	Load(ctx context.Context)
	AddItem(ctx context.Context, product *entity.Product, quantity int) (*CartChange, error)
	// SetQuantity removes the line for quantity <= 0. Unknown ids are a no-op.
	SetQuantity(ctx context.Context, productID entity.ID, quantity int) *CartChange
	// RemoveItem is idempotent.
	RemoveItem(ctx context.Context, productID entity.ID)
	Clear(ctx context.Context)

	Items() []entity.CartLineItem
	TotalItemCount() int
	TotalPrice() decimal.Decimal
}

// ParseQuantity converts user input to a quantity. Anything that is not a
// positive integer becomes 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}

	return n
}
