package impl

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
)

const (
	insufficientStockMarker = "insufficient stock"
	customerNotFoundMarker  = "customer not found"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	cart     usecase.CartUsecase
	session  usecase.SessionUsecase
	orders   service.OrderAPI
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	cart usecase.CartUsecase,
	session usecase.SessionUsecase,
	orders service.OrderAPI,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		cart:     cart,
		session:  session,
		orders:   orders,
		validate: util.NewValidator(),
		logger:   logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ShippingDefaults builds the initial checkout form. A missing customer
// profile is expected for first-time buyers and leaves the address empty.
func (srv *checkoutService) ShippingDefaults(ctx context.Context) (*entity.ShippingDetails, error) {
	user := srv.session.CurrentUser()
	if user == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	details := &entity.ShippingDetails{
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		PaymentMethod: entity.PaymentCreditCard,
	}

	customer, err := srv.orders.GetCustomerProfile(ctx)
	switch {
	case errors.Is(err, domainerrors.ErrCustomerNotFound):
		srv.log(ctx).Debug("No saved customer profile")

		return details, nil
	case err != nil:
		return nil, checkoutFailure(err)
	}

	if customer.FirstName != "" {
		details.FirstName = customer.FirstName
	}
	if customer.LastName != "" {
		details.LastName = customer.LastName
	}
	details.Address = customer.Address
	details.City = customer.City
	details.State = customer.State
	details.ZipCode = customer.ZipCode
	details.Country = customer.Country
	details.Phone = customer.Phone

	return details, nil
}

// PlaceOrder upserts the shipping profile, creates the order from the cart
// and clears the cart once the backend accepted it.
func (srv *checkoutService) PlaceOrder(ctx context.Context, details *entity.ShippingDetails) (*entity.Order, error) {
	if !srv.session.IsAuthenticated() {
		return nil, domainerrors.ErrNotAuthenticated
	}

	items := srv.cart.Items()
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	if details == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("shipping details are required")
	}
	if err := srv.validate.Struct(details); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(util.ValidationDetails(err))
	}

	customer, err := srv.orders.UpsertCustomer(ctx, details.Customer())
	if err != nil {
		srv.log(ctx).Warn("Customer profile not saved", slog.Any("error", err))

		return nil, checkoutFailure(err)
	}

	req := &entity.OrderRequest{
		CustomerID:    customer.ID,
		Items:         make([]entity.OrderItem, 0, len(items)),
		PaymentMethod: details.PaymentMethod,
	}
	for _, item := range items {
		req.Items = append(req.Items, entity.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := srv.orders.CreateOrder(ctx, req)
	if err != nil {
		srv.log(ctx).Warn("Order not placed", slog.Any("error", err), slog.Int("lines", len(req.Items)))

		return nil, checkoutFailure(err)
	}

	srv.cart.Clear(ctx)

	srv.log(ctx).Info("Order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("customer_id", customer.ID.String()),
		slog.Int("lines", len(req.Items)),
	)

	return order, nil
}

// OrderHistory lists past orders. Orders without a timestamp keep their
// backend order after the dated ones.
func (srv *checkoutService) OrderHistory(ctx context.Context) ([]entity.Order, error) {
	if !srv.session.IsAuthenticated() {
		return nil, domainerrors.ErrNotAuthenticated
	}

	orders, err := srv.orders.ListOrders(ctx)
	if err != nil {
		srv.log(ctx).Warn("Order history not loaded", slog.Any("error", err))

		return nil, checkoutFailure(err)
	}

	slices.SortStableFunc(orders, func(a, b entity.Order) int {
		switch {
		case a.CreatedAt == nil && b.CreatedAt == nil:
			return 0
		case a.CreatedAt == nil:
			return 1
		case b.CreatedAt == nil:
			return -1
		default:
			return b.CreatedAt.Compare(*a.CreatedAt)
		}
	})

	return orders, nil
}

// checkoutFailure maps backend rejections during checkout. Credential
// rejections have already ended the session through the authorizer hook.
func checkoutFailure(err error) error {
	remoteErr, ok := domainerrors.AsRemoteError(err)
	if !ok {
		return err
	}

	switch {
	case remoteErr.IsAuthRejection():
		return domainerrors.ErrAuthInvalidated
	case strings.Contains(strings.ToLower(remoteErr.Message), insufficientStockMarker):
		return domainerrors.ErrInsufficientStock.WithMessage(remoteErr.Message)
	case remoteErr.StatusCode == http.StatusNotFound &&
		strings.Contains(strings.ToLower(remoteErr.Message), customerNotFoundMarker):
		return domainerrors.ErrCustomerNotFound
	case remoteErr.StatusCode == http.StatusBadRequest:
		return domainerrors.ErrValidationFailed.WithMessage(remoteErr.Message)
	default:
		return domainerrors.ErrRequestFailed.WithMessage(remoteErr.Message)
	}
}
