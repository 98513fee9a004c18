package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal storefront API.
type fakeBackend struct {
	token string

	mu      sync.Mutex
	revoked bool
	orders  []entity.OrderRequest
	query   url.Values
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	b := &fakeBackend{token: token}
	user := map[string]any{"_id": "u1", "email": "ada@example.com", "firstName": "Ada", "lastName": "Lovelace"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret1" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"})

			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": b.token, "user": user})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "jwt expired"})

			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "p1" {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Product not found"})

			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"product": map[string]any{"_id": "p1", "name": "Mug", "price": 19.99, "countInStock": 2},
		})
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.query = r.URL.Query()
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"products": []any{
				map[string]any{"_id": "p1", "name": "Mug", "price": 19.99, "countInStock": 2},
				map[string]any{"_id": "p2", "name": "Teapot", "price": "45", "countInStock": 0},
				map[string]any{"name": "No id"},
			},
			"totalPages":  3,
			"currentPage": 2,
			"totalItems":  25,
		})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})

			return
		}
		writeJSON(w, http.StatusOK, []any{
			map[string]any{
				"_id": "o-1", "orderNumber": "ORD-1", "status": "delivered", "totalPrice": 19.99,
				"createdAt":  "2026-03-01T10:00:00Z",
				"OrderItems": []any{map[string]any{"productName": "Mug", "quantity": 1, "price": 19.99}},
			},
			map[string]any{
				"_id": "o-2", "status": "pending", "totalPrice": 39.98,
				"createdAt":  "2026-04-01T10:00:00Z",
				"OrderItems": []any{map[string]any{"productName": "Mug", "quantity": 2, "price": 19.99}},
			},
		})
	})
	mux.HandleFunc("GET /customers/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Customer not found"})
	})
	mux.HandleFunc("POST /customers/profile", func(w http.ResponseWriter, r *http.Request) {
		var customer map[string]any
		_ = json.NewDecoder(r.Body).Decode(&customer)
		customer["_id"] = "c-1"
		writeJSON(w, http.StatusOK, map[string]any{"customer": customer})
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})

			return
		}
		var req entity.OrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.orders = append(b.orders, req)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"order": map[string]any{"_id": "o-1", "totalAmount": 39.98}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return b, srv
}

func (b *fakeBackend) authorized(r *http.Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return !b.revoked && r.Header.Get("Authorization") == "Bearer "+b.token
}

func (b *fakeBackend) placed() []entity.OrderRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]entity.OrderRequest(nil), b.orders...)
}

func (b *fakeBackend) lastQuery() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.query
}

func (b *fakeBackend) revoke() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked = true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// cli runs commands against backendURL with state kept in a temp directory
// shared by every invocation, like repeated runs of the binary.
func cli(t *testing.T, backendURL string) func(stdin string, args ...string) cliResult {
	t.Helper()

	dir := t.TempDir()
	configure := func(cfg *config.Config) {
		cfg.Backend.BaseURL = backendURL
		cfg.Storage.Provider = storage.ProviderBlob
		cfg.Storage.Blob.URL = "file://" + dir
		cfg.Storage.Namespace = "test"
	}

	return func(stdin string, args ...string) cliResult {
		cmd := newRootCommand(configure)

		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetArgs(args)

		err := cmd.ExecuteContext(context.Background())

		return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
	}
}

func TestCommandPresence(t *testing.T) {
	cmd := newRootCommand()
	commands := [][]string{
		{"serve"}, {"cart", "list"}, {"cart", "add"}, {"cart", "set"}, {"cart", "remove"}, {"cart", "clear"},
		{"login"}, {"register"}, {"logout"}, {"whoami"}, {"checkout"}, {"products", "list"}, {"orders"},
	}

	for _, path := range commands {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, srv := newFakeBackend(t)
	run := cli(t, srv.URL)

	res := run("", "cart", "list", "--format", "yaml")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid format")
	assert.Equal(t, 2, exitCode(res.err))
}

func TestShoppingFlow(t *testing.T) {
	backend, srv := newFakeBackend(t)
	run := cli(t, srv.URL)

	res := run("", "whoami")
	require.NoError(t, res.err)
	assert.Equal(t, "Not signed in.\n", res.stdout)

	res = run("", "login", "--email", "ada@example.com", "--password", "wrong")
	require.ErrorIs(t, res.err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, 1, exitCode(res.err))
	var out bytes.Buffer
	printError(&out, res.err)
	assert.Equal(t, "Error: Invalid email or password\n", out.String())

	res = run("secret1\n", "login", "--email", "ada@example.com")
	require.NoError(t, res.err)
	assert.Equal(t, "Signed in as Ada Lovelace.\n", res.stdout)

	res = run("", "cart", "add", "p1", "5")
	require.NoError(t, res.err)
	assert.Equal(t, "Added Mug. 2 in cart.\nOnly 2 in stock.\n", res.stdout)

	res = run("", "cart", "add", "missing")
	require.ErrorIs(t, res.err, domainerrors.ErrProductNotFound)

	res = run("", "cart", "list", "--format", "json")
	require.NoError(t, res.err)
	var listed cartOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &listed))
	assert.Equal(t, 2, listed.TotalItems)
	assert.Equal(t, "39.98", listed.TotalPrice)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, entity.ID("p1"), listed.Items[0].ProductID)

	res = run("", "whoami")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Ada Lovelace <ada@example.com>")
	assert.Contains(t, res.stdout, "Session expires in 1h")

	res = run("", "checkout",
		"--address", "12 St James's Square",
		"--city", "London",
		"--state", "LDN",
		"--zip", "SW1Y 4JH",
		"--country", "UK",
		"--phone", "020 7946 0018",
	)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "Order o-1 placed. Total $39.98.\n", res.stdout)

	orders := backend.placed()
	require.Len(t, orders, 1)
	assert.Equal(t, entity.OrderRequest{
		CustomerID:    "c-1",
		Items:         []entity.OrderItem{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentCreditCard,
	}, orders[0])

	res = run("", "cart", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "Your cart is empty.\n", res.stdout)

	// The backend stops accepting the token: the next run signs out.
	backend.revoke()

	res = run("", "cart", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "You have been signed out.")

	res = run("", "whoami")
	require.NoError(t, res.err)
	assert.Equal(t, "Not signed in.\n", res.stdout)
}

func TestCheckoutRequiresSession(t *testing.T) {
	_, srv := newFakeBackend(t)
	run := cli(t, srv.URL)

	res := run("", "checkout")

	require.ErrorIs(t, res.err, domainerrors.ErrNotAuthenticated)
}

func TestCartEditing(t *testing.T) {
	_, srv := newFakeBackend(t)
	run := cli(t, srv.URL)

	require.NoError(t, run("", "cart", "add", "p1").err)

	res := run("", "cart", "set", "p1", "9")
	require.NoError(t, res.err)
	assert.Equal(t, "Mug set to 2, the most available.\n", res.stdout)

	res = run("", "cart", "set", "p1", "0")
	require.NoError(t, res.err)
	assert.Equal(t, "Removed Mug.\n", res.stdout)

	res = run("", "cart", "set", "p1", "3")
	require.NoError(t, res.err)
	assert.Equal(t, "p1 is not in the cart.\n", res.stdout)

	require.NoError(t, run("", "cart", "add", "p1").err)
	res = run("", "cart", "clear")
	require.NoError(t, res.err)
	assert.Equal(t, "Your cart is empty.\n", res.stdout)
}

func TestProductsList(t *testing.T) {
	backend, srv := newFakeBackend(t)
	run := cli(t, srv.URL)

	res := run("", "products", "list",
		"--search", "mug",
		"--min-price", "5",
		"--max-price", "50.5",
		"--page", "2",
		"--limit", "10",
		"--sort-by", "price",
		"--sort-order", "desc",
	)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, url.Values{
		"search":    {"mug"},
		"minPrice":  {"5"},
		"maxPrice":  {"50.5"},
		"page":      {"2"},
		"limit":     {"10"},
		"sortBy":    {"price"},
		"sortOrder": {"DESC"},
	}, backend.lastQuery())
	assert.Contains(t, res.stdout, "p1  Mug")
	assert.Contains(t, res.stdout, "$45.00")
	assert.NotContains(t, res.stdout, "No id")
	assert.Contains(t, res.stdout, "Page 2 of 3, 25 product(s).")

	res = run("", "products", "list", "--format", "json")
	require.NoError(t, res.err)
	var page entity.ProductPage
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &page))
	require.Len(t, page.Products, 2)
	assert.Equal(t, entity.ID("p2"), page.Products[1].ID)
	assert.Equal(t, 25, page.TotalItems)
	assert.Empty(t, backend.lastQuery())
}

func TestProductsListRejectsBadFilters(t *testing.T) {
	_, srv := newFakeBackend(t)
	run := cli(t, srv.URL)

	res := run("", "products", "list", "--min-price", "cheap")
	require.ErrorIs(t, res.err, domainerrors.ErrValidationFailed)
	appErr, ok := domainerrors.AsAppError(res.err)
	require.True(t, ok)
	assert.Equal(t, "min-price: decimal", appErr.Details())

	res = run("", "products", "list", "--limit", "500")
	require.ErrorIs(t, res.err, domainerrors.ErrValidationFailed)
	assert.Equal(t, 1, exitCode(res.err))
}

func TestOrders(t *testing.T) {
	_, srv := newFakeBackend(t)
	run := cli(t, srv.URL)

	res := run("", "orders")
	require.ErrorIs(t, res.err, domainerrors.ErrNotAuthenticated)

	require.NoError(t, run("", "login", "--email", "ada@example.com", "--password", "secret1").err)

	res = run("", "orders")
	require.NoError(t, res.err, res.stderr)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ORDER"))
	assert.True(t, strings.HasPrefix(lines[1], "o-2"))
	assert.Contains(t, lines[1], "2026-04-01")
	assert.Contains(t, lines[1], "$39.98")
	assert.True(t, strings.HasPrefix(lines[2], "ORD-1"))

	res = run("", "orders", "--format", "json")
	require.NoError(t, res.err)
	var orders []entity.Order
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, entity.ID("o-2"), orders[0].ID)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, 2, orders[0].Lines[0].Quantity)
}

func TestParseSetQuantity(t *testing.T) {
	assert.Equal(t, 3, parseSetQuantity("3"))
	assert.Equal(t, 0, parseSetQuantity(" 0 "))
	assert.Equal(t, -2, parseSetQuantity("-2"))
	assert.Equal(t, 1, parseSetQuantity("two"))
}

func TestOverlayShipping(t *testing.T) {
	flags := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	var form entity.ShippingDetails
	flags.StringVar(&form.City, "city", "", "")
	flags.StringVar(&form.FirstName, "first-name", "", "")
	require.NoError(t, flags.Parse([]string{"--city", "Paris"}))

	details := &entity.ShippingDetails{FirstName: "Ada", City: "London"}
	overlayShipping(flags, details, &form)

	assert.Equal(t, "Paris", details.City)
	assert.Equal(t, "Ada", details.FirstName)
}
