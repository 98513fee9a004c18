// Package kv implements the domain repositories on top of a KeyValueStore.
package kv

import (
	"context"
	"encoding/json"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

type cartRepository struct {
	store repository.KeyValueStore
}

// NewCartRepository stores the cart as a JSON array under the "cart" key.
func NewCartRepository(store repository.KeyValueStore) repository.CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) Load(ctx context.Context) (*entity.Cart, error) {
	raw, err := r.store.Get(ctx, repository.KeyCart)
	if err != nil {
		return nil, err
	}

	cart := entity.NewCart()
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		return nil, errors.Wrap(err, "decode stored cart")
	}

	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}

	return r.store.Set(ctx, repository.KeyCart, string(data))
}
