package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/http/router"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockService "storefront/internal/mocks/service"
	mockUsecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	echo     *echo.Echo
	cart     *mockUsecase.MockCartUsecase
	session  *mockUsecase.MockSessionUsecase
	checkout *mockUsecase.MockCheckoutUsecase
	catalog  *mockService.MockCatalogAPI
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.Env.Debug = true
	cfg.HTTP.MaxRequestBodySize = "1M"

	f := &serverFixture{
		cart:     mockUsecase.NewMockCartUsecase(t),
		session:  mockUsecase.NewMockSessionUsecase(t),
		checkout: mockUsecase.NewMockCheckoutUsecase(t),
		catalog:  mockService.NewMockCatalogAPI(t),
	}
	f.echo = newEcho(ServerParams{
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			CartHandler:     handler.NewCartHandler(f.cart, f.catalog, logger),
			SessionHandler:  handler.NewSessionHandler(f.session, logger),
			CheckoutHandler: handler.NewCheckoutHandler(f.checkout, logger),
		},
	})

	return f
}

func (f *serverFixture) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func (f *serverFixture) expectCartView(items []entity.CartLineItem) {
	cart := entity.NewCart(items...)
	f.cart.EXPECT().Items().Return(cart.Items())
	f.cart.EXPECT().TotalItemCount().Return(cart.TotalItemCount())
	f.cart.EXPECT().TotalPrice().Return(cart.TotalPrice())
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func TestServer_HealthAndRequestID(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.True(t, decodeEnvelope(t, rec).Success)

	rec = f.do(http.MethodGet, "/health", "", "X-Request-Id", "req-123")
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

func TestServer_GetCart(t *testing.T) {
	f := newServerFixture(t)
	f.expectCartView([]entity.CartLineItem{
		{ProductID: "p1", Name: "Mug", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 2, StockCeiling: 5},
		{ProductID: "p2", Name: "Poster", UnitPrice: decimal.NewFromInt(5), Quantity: 1, StockCeiling: 0},
	})

	rec := f.do(http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view handler.CartView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
	assert.Equal(t, 3, view.TotalItems)
	assert.Equal(t, "$44.98", view.TotalPrice)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "$39.98", view.Items[0].Subtotal)
	assert.False(t, view.Items[0].OutOfStock)
	assert.True(t, view.Items[1].OutOfStock)
}

func TestServer_AddItem(t *testing.T) {
	product := &entity.Product{ID: "p1", Name: "Mug", Price: decimal.RequireFromString("19.99"), CountInStock: 2}

	t.Run("clamped to stock", func(t *testing.T) {
		f := newServerFixture(t)
		f.catalog.EXPECT().GetProduct(mock.Anything, entity.ID("p1")).Return(product, nil)
		f.cart.EXPECT().AddItem(mock.Anything, product, 5).Return(&usecase.CartChange{
			Item:      entity.CartLineItem{ProductID: "p1", Quantity: 2, StockCeiling: 2},
			Requested: 5,
			Clamped:   true,
		}, nil)
		f.expectCartView([]entity.CartLineItem{{ProductID: "p1", UnitPrice: product.Price, Quantity: 2, StockCeiling: 2}})

		rec := f.do(http.MethodPost, "/cart/items", `{"productId":"p1","quantity":5}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Quantity limited to available stock", decodeEnvelope(t, rec).Message)
	})

	t.Run("numeric product id", func(t *testing.T) {
		f := newServerFixture(t)
		f.catalog.EXPECT().GetProduct(mock.Anything, entity.ID("42")).Return(&entity.Product{ID: "42"}, nil)
		f.cart.EXPECT().AddItem(mock.Anything, mock.Anything, 0).Return(nil, domainerrors.ErrOutOfStock.WithDetails("Poster"))

		rec := f.do(http.MethodPost, "/cart/items", `{"productId":42}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "OUT_OF_STOCK", env.Error.Code)
		assert.Equal(t, "Poster", env.Error.Details)
	})

	t.Run("missing product id", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, "/cart/items", `{"quantity":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Contains(t, env.Error.Details, "productID")
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newServerFixture(t)
		f.catalog.EXPECT().GetProduct(mock.Anything, entity.ID("nope")).Return(nil, domainerrors.ErrProductNotFound)

		rec := f.do(http.MethodPost, "/cart/items", `{"productId":"nope"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, "/cart/items", `{"productId":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, rec).Error.Code)
	})
}

func TestServer_UpdateCart(t *testing.T) {
	f := newServerFixture(t)

	f.cart.EXPECT().SetQuantity(mock.Anything, entity.ID("p1"), 0).
		Return(&usecase.CartChange{Item: entity.CartLineItem{ProductID: "p1"}, Removed: true}).Once()
	f.cart.EXPECT().RemoveItem(mock.Anything, entity.ID("p2")).Return().Once()
	f.cart.EXPECT().Clear(mock.Anything).Return().Once()
	f.cart.EXPECT().Items().Return(nil)
	f.cart.EXPECT().TotalItemCount().Return(0)
	f.cart.EXPECT().TotalPrice().Return(decimal.Zero)

	rec := f.do(http.MethodPut, "/cart/items/p1", `{"quantity":0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Removed from cart", decodeEnvelope(t, rec).Message)

	rec = f.do(http.MethodDelete, "/cart/items/p2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view handler.CartView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
	assert.Empty(t, view.Items)
	assert.Equal(t, "$0.00", view.TotalPrice)
}

func TestServer_Session(t *testing.T) {
	t.Run("login rejected", func(t *testing.T) {
		f := newServerFixture(t)
		f.session.EXPECT().
			Login(mock.Anything, &service.Credentials{Email: "a@b.co", Password: "bad"}).
			Return(nil, domainerrors.ErrInvalidCredentials)

		rec := f.do(http.MethodPost, "/session/login", `{"email":"a@b.co","password":"bad"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		assert.Equal(t, "Login failed. Please check your credentials.", env.Message)
	})

	t.Run("login then view", func(t *testing.T) {
		f := newServerFixture(t)
		user := &entity.User{ID: "u1", Email: "a@b.co"}
		f.session.EXPECT().Login(mock.Anything, mock.Anything).Return(user, nil)
		f.session.EXPECT().State().Return(entity.SessionAuthenticated)
		f.session.EXPECT().IsAuthenticated().Return(true)
		f.session.EXPECT().CurrentUser().Return(user)

		rec := f.do(http.MethodPost, "/session/login", `{"email":"a@b.co","password":"pw"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var view handler.SessionView
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
		assert.Equal(t, "authenticated", view.State)
		assert.True(t, view.Authenticated)
		assert.Equal(t, entity.ID("u1"), view.User.ID)
	})

	t.Run("logout", func(t *testing.T) {
		f := newServerFixture(t)
		f.session.EXPECT().Logout(mock.Anything).Return().Once()
		f.session.EXPECT().State().Return(entity.SessionAnonymous)
		f.session.EXPECT().IsAuthenticated().Return(false)
		f.session.EXPECT().CurrentUser().Return(nil)

		rec := f.do(http.MethodDelete, "/session", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"user"`)
	})
}

func TestServer_Checkout(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		f := newServerFixture(t)
		f.checkout.EXPECT().PlaceOrder(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotAuthenticated)

		rec := f.do(http.MethodPost, "/checkout", `{"firstName":"Ada"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "NOT_AUTHENTICATED", decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("placed", func(t *testing.T) {
		f := newServerFixture(t)
		f.checkout.EXPECT().
			PlaceOrder(mock.Anything, mock.MatchedBy(func(d *entity.ShippingDetails) bool {
				return d.City == "London" && d.PaymentMethod == entity.PaymentPayPal
			})).
			Return(&entity.Order{ID: "o-1", TotalAmount: decimal.RequireFromString("44.98")}, nil)

		rec := f.do(http.MethodPost, "/checkout", `{"city":"London","paymentMethod":"paypal"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"o-1"`)
	})

	t.Run("defaults", func(t *testing.T) {
		f := newServerFixture(t)
		f.checkout.EXPECT().ShippingDefaults(mock.Anything).
			Return(&entity.ShippingDetails{FirstName: "Ada", PaymentMethod: entity.PaymentCreditCard}, nil)

		rec := f.do(http.MethodGet, "/checkout/defaults", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"credit_card"`)
	})

	t.Run("unexpected failure hides details", func(t *testing.T) {
		f := newServerFixture(t)
		f.checkout.EXPECT().ShippingDefaults(mock.Anything).Return(nil, errors.New("boom"))

		rec := f.do(http.MethodGet, "/checkout/defaults", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
	})
}

func TestServer_ListProducts(t *testing.T) {
	t.Run("query becomes filter", func(t *testing.T) {
		f := newServerFixture(t)
		f.catalog.EXPECT().
			ListProducts(mock.Anything, mock.MatchedBy(func(filter *entity.ProductFilter) bool {
				return filter.Page == 2 && filter.Limit == 9 && filter.Search == "mug" &&
					filter.MinPrice != nil && filter.MinPrice.Equal(decimal.NewFromInt(5)) &&
					filter.MaxPrice == nil && filter.SortOrder == entity.SortDescending
			})).
			Return(&entity.ProductPage{
				Products:    []entity.Product{{ID: "p1", Name: "Mug", Price: decimal.RequireFromString("9.50"), CountInStock: 3}},
				TotalPages:  4,
				CurrentPage: 2,
				TotalItems:  31,
			}, nil)

		rec := f.do(http.MethodGet, "/products?page=2&limit=9&search=mug&minPrice=5&sortOrder=DESC", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var page entity.ProductPage
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &page))
		assert.Equal(t, 31, page.TotalItems)
		require.Len(t, page.Products, 1)
		assert.Equal(t, entity.ID("p1"), page.Products[0].ID)
	})

	t.Run("malformed price", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodGet, "/products?maxPrice=cheap", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Equal(t, "maxPrice: decimal", env.Error.Details)
	})

	t.Run("malformed page", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodGet, "/products?page=two", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, rec).Error.Code)
	})
}

func TestServer_ListOrders(t *testing.T) {
	t.Run("history", func(t *testing.T) {
		f := newServerFixture(t)
		f.checkout.EXPECT().OrderHistory(mock.Anything).Return([]entity.Order{
			{ID: "o-2", OrderNumber: "ORD-2", Status: "shipped", TotalAmount: decimal.NewFromInt(12)},
		}, nil)

		rec := f.do(http.MethodGet, "/orders", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var orders []entity.Order
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-2", orders[0].Number())
	})

	t.Run("signed out", func(t *testing.T) {
		f := newServerFixture(t)
		f.checkout.EXPECT().OrderHistory(mock.Anything).Return(nil, domainerrors.ErrNotAuthenticated)

		rec := f.do(http.MethodGet, "/orders", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestServer_UnknownRoute(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", decodeEnvelope(t, rec).Error.Code)
}
