package entity

import "github.com/shopspring/decimal"

// Product is a catalog entry as returned by the backend. CountInStock is the
// stock available at fetch time and becomes the cart line's stock ceiling.
type Product struct {
	ID           ID              `json:"id" validate:"required"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	Image        string          `json:"image,omitempty"`
	CountInStock int             `json:"countInStock" validate:"gte=0"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.CountInStock > 0
}

// Catalog sort orders.
const (
	SortAscending  = "ASC"
	SortDescending = "DESC"
)

// ProductFilter narrows a catalog listing. Zero values are left out of the query.
type ProductFilter struct {
	Page       int              `validate:"gte=0"`
	Limit      int              `validate:"gte=0,lte=100"`
	Search     string           `validate:"max=100"`
	CategoryID string           `validate:"max=64"`
	MinPrice   *decimal.Decimal `validate:"omitempty,gte=0"`
	MaxPrice   *decimal.Decimal `validate:"omitempty,gte=0"`
	MinRating  float64          `validate:"gte=0,lte=5"`
	SortBy     string           `validate:"max=32"`
	SortOrder  string           `validate:"omitempty,oneof=ASC DESC"`
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products    []Product `json:"products"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	TotalItems  int       `json:"totalItems"`
}
