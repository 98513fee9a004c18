package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentCreditCard = "credit_card"
	PaymentPayPal     = "paypal"
)

// OrderItem is one product/quantity pair of an order request.
type OrderItem struct {
	ProductID ID  `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OrderRequest is the body sent to the order endpoint.
type OrderRequest struct {
	CustomerID    ID          `json:"customerId"`
	Items         []OrderItem `json:"items"`
	PaymentMethod string      `json:"paymentMethod"`
}

// Order is the backend's record of a placed order.
type Order struct {
	ID            ID              `json:"id" validate:"required"`
	OrderNumber   string          `json:"orderNumber,omitempty"`
	Status        string          `json:"status,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	Lines         []OrderLine     `json:"lines,omitempty"`
}

// Number is the order number shown to customers, falling back to the id.
func (o *Order) Number() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}

	return o.ID.String()
}

// OrderLine is one purchased product of a placed order, priced at purchase time.
type OrderLine struct {
	ProductID   ID              `json:"productId,omitempty"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// Subtotal is quantity times the unit price.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Customer is the shipping profile the backend keeps per user.
type Customer struct {
	ID        ID     `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// ShippingDetails is the checkout form.
type ShippingDetails struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	ZipCode       string `json:"zipCode" validate:"required"`
	Country       string `json:"country" validate:"required"`
	Phone         string `json:"phone" validate:"required,phone_digits"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=credit_card paypal"`
}

// Customer converts the form into the profile payload.
func (d *ShippingDetails) Customer() *Customer {
	return &Customer{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Address:   d.Address,
		City:      d.City,
		State:     d.State,
		ZipCode:   d.ZipCode,
		Country:   d.Country,
		Phone:     d.Phone,
	}
}
