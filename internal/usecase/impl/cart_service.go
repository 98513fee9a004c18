// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	repo     repository.CartRepository
	validate *validator.Validate
	logger   *slog.Logger

	// mu serializes mutations together with the snapshot write that follows them.
	mu   sync.Mutex
	cart *entity.Cart
}

// NewCartService is the constructor for cartService. The cart starts empty until Load.
func NewCartService(repo repository.CartRepository, logger *slog.Logger) usecase.CartUsecase {
	return &cartService{
		repo:     repo,
		validate: util.NewValidator(),
		logger:   logger,
		cart:     entity.NewCart(),
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Load replaces the in-memory cart with the stored snapshot.
func (srv *cartService) Load(ctx context.Context) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	stored, err := srv.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrKeyNotFound):
		srv.log(ctx).Debug("No stored cart, starting empty")
		srv.cart = entity.NewCart()

		return
	case err != nil:
		srv.log(ctx).Warn("Stored cart unreadable, starting empty", slog.Any("error", err))
		srv.cart = entity.NewCart()

		return
	}

	repaired, changed := repairCart(stored)
	srv.cart = repaired
	srv.log(ctx).Debug("Cart loaded", slog.Int("lines", repaired.Len()))

	if changed > 0 {
		srv.log(ctx).Warn("Repaired stored cart lines", slog.Int("changed", changed))
		srv.persist(ctx)
	}
}

// repairCart enforces the line item invariants on data read from storage.
// Rows without an id or with a negative price are dropped; quantities are
// clamped into [1, max(ceiling, 1)].
func repairCart(stored *entity.Cart) (*entity.Cart, int) {
	repaired := entity.NewCart()
	changed := 0

	for _, item := range stored.Items() {
		if item.ProductID.IsZero() || item.UnitPrice.IsNegative() {
			changed++

			continue
		}

		fixed := item
		if fixed.StockCeiling < 0 {
			fixed.StockCeiling = 0
		}
		fixed.Quantity = min(max(fixed.Quantity, 1), fixed.MaxQuantity())

		if fixed != item {
			changed++
		}
		repaired.Put(fixed)
	}

	return repaired, changed
}

// AddItem adds quantity units of product, clamped to the product's stock.
func (srv *cartService) AddItem(ctx context.Context, product *entity.Product, quantity int) (*usecase.CartChange, error) {
	if product == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("product is required")
	}
	if err := srv.validate.Struct(product); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(util.ValidationDetails(err))
	}
	if quantity <= 0 {
		quantity = 1
	}

	if !product.InStock() {
		srv.log(ctx).Info("Rejected out of stock product", slog.String("product_id", product.ID.String()))

		return nil, domainerrors.ErrOutOfStock.WithDetails(product.Name)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	var (
		item   entity.CartLineItem
		wanted int
	)
	if existing, ok := srv.cart.Get(product.ID); ok {
		wanted = existing.Quantity + quantity
		item = existing
		item.Quantity = min(wanted, product.CountInStock)
		item.StockCeiling = product.CountInStock
	} else {
		wanted = quantity
		item = entity.CartLineItem{
			ProductID:    product.ID,
			Name:         product.Name,
			UnitPrice:    product.Price,
			ImageRef:     product.Image,
			Quantity:     min(wanted, product.CountInStock),
			StockCeiling: product.CountInStock,
		}
	}

	srv.cart.Put(item)
	srv.persist(ctx)

	change := &usecase.CartChange{Item: item, Requested: quantity, Clamped: item.Quantity != wanted}
	if change.Clamped {
		srv.log(ctx).Info("Cart quantity limited by stock",
			slog.String("product_id", product.ID.String()),
			slog.Int("wanted", wanted),
			slog.Int("quantity", item.Quantity),
		)
	}

	return change, nil
}

// SetQuantity overwrites a line's quantity, clamped to its cached ceiling.
func (srv *cartService) SetQuantity(ctx context.Context, productID entity.ID, quantity int) *usecase.CartChange {
	if quantity <= 0 {
		return srv.remove(ctx, productID, quantity)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	item, ok := srv.cart.Get(productID)
	if !ok {
		srv.persist(ctx)

		return nil
	}

	item.Quantity = min(quantity, item.MaxQuantity())
	srv.cart.Put(item)
	srv.persist(ctx)

	return &usecase.CartChange{Item: item, Requested: quantity, Clamped: item.Quantity != quantity}
}

// RemoveItem drops the line for productID, if present.
func (srv *cartService) RemoveItem(ctx context.Context, productID entity.ID) {
	srv.remove(ctx, productID, 0)
}

func (srv *cartService) remove(ctx context.Context, productID entity.ID, requested int) *usecase.CartChange {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	item, ok := srv.cart.Get(productID)
	srv.cart.Remove(productID)
	srv.persist(ctx)

	if !ok {
		return nil
	}

	return &usecase.CartChange{Item: item, Requested: requested, Removed: true}
}

// Clear empties the cart.
func (srv *cartService) Clear(ctx context.Context) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.cart.Reset()
	srv.persist(ctx)
}

func (srv *cartService) Items() []entity.CartLineItem {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.cart.Items()
}

func (srv *cartService) TotalItemCount() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.cart.TotalItemCount()
}

func (srv *cartService) TotalPrice() decimal.Decimal {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.cart.TotalPrice()
}

// persist writes the full snapshot. The caller holds mu. Failures leave the
// in-memory cart authoritative.
func (srv *cartService) persist(ctx context.Context) {
	if err := srv.repo.Save(context.WithoutCancel(ctx), srv.cart); err != nil {
		srv.log(ctx).Warn("Cart not persisted",
			slog.Any("error", domainerrors.ErrStorageUnavailable.WithDetails(err.Error())),
		)
	}
}
