package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartLineItem is one product entry in the cart with its quantity and the
// last-known stock ceiling. JSON names follow the browser storage layout.
type CartLineItem struct {
	ProductID    ID              `json:"id"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"price"`
	ImageRef     string          `json:"image,omitempty"`
	Quantity     int             `json:"quantity"`
	StockCeiling int             `json:"countInStock"` // cached snapshot, refreshed on re-add
}

// OutOfStock reports whether the cached ceiling forbids any quantity increase.
func (i CartLineItem) OutOfStock() bool {
	return i.StockCeiling <= 0
}

// MaxQuantity is the largest quantity the line may hold: max(ceiling, 1).
func (i CartLineItem) MaxQuantity() int {
	return max(i.StockCeiling, 1)
}

// Subtotal returns quantity × unit price.
func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds line items keyed by product id in insertion order.
// Totals are derived from the items on every call and never cached.
type Cart struct {
	items []CartLineItem
	index map[ID]int
}

// NewCart builds a cart from items, keeping the first occurrence of each product id.
func NewCart(items ...CartLineItem) *Cart {
	c := &Cart{index: make(map[ID]int, len(items))}
	for _, item := range items {
		if _, exists := c.index[item.ProductID]; exists {
			continue
		}
		c.Put(item)
	}

	return c
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []CartLineItem {
	out := make([]CartLineItem, len(c.items))
	copy(out, c.items)

	return out
}

// Len returns the number of distinct products.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Get looks up a line item by product id.
func (c *Cart) Get(productID ID) (CartLineItem, bool) {
	pos, ok := c.index[productID]
	if !ok {
		return CartLineItem{}, false
	}

	return c.items[pos], true
}

// Put inserts a new line item at the end or replaces an existing one in place.
func (c *Cart) Put(item CartLineItem) {
	if c.index == nil {
		c.index = make(map[ID]int)
	}
	if pos, ok := c.index[item.ProductID]; ok {
		c.items[pos] = item

		return
	}
	c.index[item.ProductID] = len(c.items)
	c.items = append(c.items, item)
}

// Remove deletes the line item for productID and reports whether one existed.
func (c *Cart) Remove(productID ID) bool {
	pos, ok := c.index[productID]
	if !ok {
		return false
	}

	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, productID)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].ProductID] = i
	}

	return true
}

// Reset empties the cart.
func (c *Cart) Reset() {
	c.items = nil
	c.index = make(map[ID]int)
}

// TotalItemCount returns Σ quantity.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}

	return total
}

// TotalPrice returns Σ quantity × unit price.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// MarshalJSON writes the cart as a plain array of line items.
func (c *Cart) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []CartLineItem{}
	}

	return json.Marshal(items)
}

// UnmarshalJSON reads a plain array of line items.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = *NewCart(items...)

	return nil
}
