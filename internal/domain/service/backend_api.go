// Package service declares the external collaborators the storefront core talks to.
package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up payload.
type Registration struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// AuthResult is a successful login or registration: a token plus the account it belongs to.
type AuthResult struct {
	Token string
	User  *entity.User
}

// AuthAPI is the backend's authentication surface.
type AuthAPI interface {
	Register(ctx context.Context, input *Registration) (*AuthResult, error)
	Login(ctx context.Context, input *Credentials) (*AuthResult, error)
	// GetProfile is a protected call; it relies on the armed RequestAuthorizer.
	GetProfile(ctx context.Context) (*entity.User, error)
}

// CatalogAPI resolves products with their current stock.
type CatalogAPI interface {
	GetProduct(ctx context.Context, id entity.ID) (*entity.Product, error)
	// ListProducts returns one page of the catalog. A nil filter lists the first page.
	ListProducts(ctx context.Context, filter *entity.ProductFilter) (*entity.ProductPage, error)
}

// OrderAPI covers the protected checkout calls.
type OrderAPI interface {
	// GetCustomerProfile returns the saved shipping profile or ErrCustomerNotFound.
	GetCustomerProfile(ctx context.Context) (*entity.Customer, error)
	UpsertCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	CreateOrder(ctx context.Context, req *entity.OrderRequest) (*entity.Order, error)
	// ListOrders returns the signed-in user's order history.
	ListOrders(ctx context.Context) ([]entity.Order, error)
}
