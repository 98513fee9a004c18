package impl

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockService "storefront/internal/mocks/service"
	mockUsecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	srv     usecase.CheckoutUsecase
	cart    *mockUsecase.MockCartUsecase
	session *mockUsecase.MockSessionUsecase
	orders  *mockService.MockOrderAPI
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		cart:    mockUsecase.NewMockCartUsecase(t),
		session: mockUsecase.NewMockSessionUsecase(t),
		orders:  mockService.NewMockOrderAPI(t),
	}
	f.srv = NewCheckoutService(f.cart, f.session, f.orders, newDiscardLogger())

	return f
}

func validShipping() *entity.ShippingDetails {
	return &entity.ShippingDetails{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Address:       "12 St James's Square",
		City:          "London",
		State:         "LDN",
		ZipCode:       "SW1Y 4JH",
		Country:       "UK",
		Phone:         "+44 (20) 7946-0018",
		PaymentMethod: entity.PaymentPayPal,
	}
}

func cartLines() []entity.CartLineItem {
	return []entity.CartLineItem{
		{ProductID: "p1", Name: "Mug", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 2, StockCeiling: 5},
		{ProductID: "42", Name: "Poster", UnitPrice: decimal.NewFromInt(5), Quantity: 1, StockCeiling: 1},
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.session.EXPECT().IsAuthenticated().Return(true)
	f.cart.EXPECT().Items().Return(cartLines())
	f.orders.EXPECT().
		UpsertCustomer(mock.Anything, mock.MatchedBy(func(c *entity.Customer) bool {
			return c.FirstName == "Ada" && c.City == "London" && c.ID.IsZero()
		})).
		Return(&entity.Customer{ID: "c-9", FirstName: "Ada"}, nil)
	f.orders.EXPECT().
		CreateOrder(mock.Anything, &entity.OrderRequest{
			CustomerID: "c-9",
			Items: []entity.OrderItem{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "42", Quantity: 1},
			},
			PaymentMethod: entity.PaymentPayPal,
		}).
		Return(&entity.Order{ID: "o-1", Status: "pending", TotalAmount: decimal.RequireFromString("44.98")}, nil)
	f.cart.EXPECT().Clear(mock.Anything).Return().Once()

	order, err := f.srv.PlaceOrder(ctx, validShipping())

	require.NoError(t, err)
	assert.Equal(t, entity.ID("o-1"), order.ID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("44.98")))
}

func TestCheckoutService_PlaceOrderPreconditions(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().IsAuthenticated().Return(false)

		_, err := f.srv.PlaceOrder(context.Background(), validShipping())
		assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().IsAuthenticated().Return(true)
		f.cart.EXPECT().Items().Return([]entity.CartLineItem{})

		_, err := f.srv.PlaceOrder(context.Background(), validShipping())
		assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
	})

	t.Run("invalid form", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(d *entity.ShippingDetails)
			field  string
		}{
			{name: "missing city", mutate: func(d *entity.ShippingDetails) { d.City = "" }, field: "city"},
			{name: "bad email", mutate: func(d *entity.ShippingDetails) { d.Email = "ada" }, field: "email"},
			{name: "short phone", mutate: func(d *entity.ShippingDetails) { d.Phone = "555-1234" }, field: "phone"},
			{name: "unknown payment", mutate: func(d *entity.ShippingDetails) { d.PaymentMethod = "cash" }, field: "paymentMethod"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newCheckoutFixture(t)
				f.session.EXPECT().IsAuthenticated().Return(true)
				f.cart.EXPECT().Items().Return(cartLines())

				details := validShipping()
				tt.mutate(details)

				_, err := f.srv.PlaceOrder(context.Background(), details)
				require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
				assert.Contains(t, err.Error(), tt.field)
			})
		}
	})
}

func TestCheckoutService_PlaceOrderBackendFailures(t *testing.T) {
	tests := []struct {
		name      string
		upsertErr error
		orderErr  error
		want      error
		message   string
	}{
		{
			name:     "insufficient stock",
			orderErr: domainerrors.NewRemoteError(http.StatusBadRequest, "Insufficient stock for Mug", "/orders"),
			want:     domainerrors.ErrInsufficientStock,
			message:  "Insufficient stock for Mug",
		},
		{
			name:     "insufficient stock in a 2xx body",
			orderErr: domainerrors.NewRemoteError(http.StatusOK, "Insufficient stock", "/orders"),
			want:     domainerrors.ErrInsufficientStock,
		},
		{
			name:      "customer not found",
			upsertErr: domainerrors.NewRemoteError(http.StatusNotFound, "Customer not found", "/customers/profile"),
			want:      domainerrors.ErrCustomerNotFound,
		},
		{
			name:     "token rejected",
			orderErr: domainerrors.NewRemoteError(http.StatusUnauthorized, "jwt expired", "/orders"),
			want:     domainerrors.ErrAuthInvalidated,
		},
		{
			name:     "bad request",
			orderErr: domainerrors.NewRemoteError(http.StatusBadRequest, "Invalid payment method", "/orders"),
			want:     domainerrors.ErrValidationFailed,
			message:  "Invalid payment method",
		},
		{
			name:     "server error",
			orderErr: domainerrors.NewRemoteError(http.StatusInternalServerError, "", "/orders"),
			want:     domainerrors.ErrRequestFailed,
		},
		{
			name:      "backend unavailable",
			upsertErr: domainerrors.ErrBackendUnavailable,
			want:      domainerrors.ErrBackendUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.session.EXPECT().IsAuthenticated().Return(true)
			f.cart.EXPECT().Items().Return(cartLines())

			if tt.upsertErr != nil {
				f.orders.EXPECT().UpsertCustomer(mock.Anything, mock.Anything).Return(nil, tt.upsertErr)
			} else {
				f.orders.EXPECT().UpsertCustomer(mock.Anything, mock.Anything).Return(&entity.Customer{ID: "c-1"}, nil)
				f.orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(nil, tt.orderErr)
			}

			order, err := f.srv.PlaceOrder(context.Background(), validShipping())

			assert.Nil(t, order)
			require.ErrorIs(t, err, tt.want)
			if tt.message != "" {
				appErr, ok := domainerrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tt.message, appErr.Message())
			}
			// Cart survives a failed checkout: Clear has no expectation.
		})
	}
}

func TestCheckoutService_ShippingDefaults(t *testing.T) {
	user := &entity.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "King"}

	t.Run("first purchase", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().CurrentUser().Return(user)
		f.orders.EXPECT().GetCustomerProfile(mock.Anything).Return(nil, domainerrors.ErrCustomerNotFound)

		details, err := f.srv.ShippingDefaults(context.Background())

		require.NoError(t, err)
		assert.Equal(t, &entity.ShippingDetails{
			FirstName:     "Ada",
			LastName:      "King",
			Email:         "ada@example.com",
			PaymentMethod: entity.PaymentCreditCard,
		}, details)
	})

	t.Run("saved profile", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().CurrentUser().Return(user)
		f.orders.EXPECT().GetCustomerProfile(mock.Anything).Return(&entity.Customer{
			ID:        "c-1",
			FirstName: "Augusta",
			Address:   "12 St James's Square",
			City:      "London",
			Country:   "UK",
			Phone:     "02079460018",
		}, nil)

		details, err := f.srv.ShippingDefaults(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Augusta", details.FirstName)
		assert.Equal(t, "King", details.LastName)
		assert.Equal(t, "London", details.City)
		assert.Equal(t, "02079460018", details.Phone)
		assert.Equal(t, entity.PaymentCreditCard, details.PaymentMethod)
	})

	t.Run("signed out", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().CurrentUser().Return(nil)

		_, err := f.srv.ShippingDefaults(context.Background())
		assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	})

	t.Run("backend failure", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().CurrentUser().Return(user)
		f.orders.EXPECT().GetCustomerProfile(mock.Anything).
			Return(nil, domainerrors.NewRemoteError(http.StatusForbidden, "", "/customers/profile"))

		_, err := f.srv.ShippingDefaults(context.Background())
		assert.ErrorIs(t, err, domainerrors.ErrAuthInvalidated)
	})
}

func TestCheckoutService_OrderHistory(t *testing.T) {
	ctx := context.Background()
	day := func(d int) *time.Time {
		at := time.Date(2026, time.March, d, 10, 0, 0, 0, time.UTC)

		return &at
	}

	t.Run("newest first with undated last", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().IsAuthenticated().Return(true)
		f.orders.EXPECT().ListOrders(mock.Anything).Return([]entity.Order{
			{ID: "o-old", CreatedAt: day(1)},
			{ID: "o-undated"},
			{ID: "o-new", CreatedAt: day(9)},
		}, nil)

		orders, err := f.srv.OrderHistory(ctx)
		require.NoError(t, err)

		ids := make([]entity.ID, 0, len(orders))
		for _, order := range orders {
			ids = append(ids, order.ID)
		}
		assert.Equal(t, []entity.ID{"o-new", "o-old", "o-undated"}, ids)
	})

	t.Run("signed out", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().IsAuthenticated().Return(false)

		_, err := f.srv.OrderHistory(ctx)
		assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	})

	t.Run("rejected credential", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.session.EXPECT().IsAuthenticated().Return(true)
		f.orders.EXPECT().ListOrders(mock.Anything).
			Return(nil, domainerrors.NewRemoteError(http.StatusUnauthorized, "jwt expired", "/orders"))

		_, err := f.srv.OrderHistory(ctx)
		assert.ErrorIs(t, err, domainerrors.ErrAuthInvalidated)
	})
}
