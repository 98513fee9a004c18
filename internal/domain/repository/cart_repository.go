package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartRepository persists the cart as a full snapshot.
type CartRepository interface {
	// Load returns the stored cart. A missing key yields ErrKeyNotFound;
	// unparseable content yields a decode error.
	Load(ctx context.Context) (*entity.Cart, error)

	// Save overwrites the stored snapshot.
	Save(ctx context.Context, cart *entity.Cart) error
}
