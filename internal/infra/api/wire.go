package api

import (
	"bytes"
	"encoding/json"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/shopspring/decimal"
)

// errorBody is the backend's failure envelope.
type errorBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}

	return b.Error
}

// unwrapData returns the "data" member of a {success, data} envelope, or raw itself.
func unwrapData(raw []byte) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && isObject(envelope.Data) {
		return envelope.Data
	}

	return raw
}

// member returns obj[name] when it is a JSON object, or obj itself otherwise.
// Used for bodies that arrive either as {product: {...}} or as the product.
func member(raw json.RawMessage, name string) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	if inner, ok := obj[name]; ok && isObject(inner) {
		return inner
	}

	return raw
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) > 0 && trimmed[0] == '{'
}

// wireUser accepts ids under "id" or "_id".
type wireUser struct {
	ID        entity.ID `json:"id"`
	MongoID   entity.ID `json:"_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

func (w *wireUser) toEntity() *entity.User {
	id := w.ID
	if id.IsZero() {
		id = w.MongoID
	}
	username := w.Username
	if username == "" {
		username = w.Name
	}

	return &entity.User{
		ID:        id,
		Username:  username,
		Email:     w.Email,
		Role:      w.Role,
		FirstName: w.FirstName,
		LastName:  w.LastName,
	}
}

func decodeUser(raw json.RawMessage) (*entity.User, error) {
	var w wireUser
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrap(err, "decode user")
	}

	return w.toEntity(), nil
}

// authBody is the login/register success shape: token or accessToken, plus
// a user under "user" or the body itself.
type authBody struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user"`
}

func (b authBody) token() string {
	if b.Token != "" {
		return b.Token
	}

	return b.AccessToken
}

// wireEntity is a resource that may carry its id under "_id".
type wireEntity struct {
	ID      entity.ID `json:"id"`
	MongoID entity.ID `json:"_id"`
}

func (w wireEntity) id() entity.ID {
	if w.ID.IsZero() {
		return w.MongoID
	}

	return w.ID
}

// listMember returns the elements of raw when it is an array, or of the
// array held under name or "data". An object without one is an empty list.
func listMember(raw json.RawMessage, name string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if !isObject(raw) {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errors.Wrapf(err, "decode %s list", name)
		}

		return items, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.Wrapf(err, "decode %s list", name)
	}
	for _, key := range []string{name, "data"} {
		if inner, ok := obj[key]; ok && json.Unmarshal(inner, &items) == nil {
			return items, nil
		}
	}

	return nil, nil
}

// wireOrder accepts both the create and the history shapes: the total under
// totalAmount or totalPrice, the lines under OrderItems or items.
type wireOrder struct {
	wireEntity
	OrderNumber   string             `json:"orderNumber"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"paymentMethod"`
	TotalAmount   *decimal.Decimal   `json:"totalAmount"`
	TotalPrice    *decimal.Decimal   `json:"totalPrice"`
	CreatedAt     *time.Time         `json:"createdAt"`
	OrderItems    []entity.OrderLine `json:"OrderItems"`
	Items         []entity.OrderLine `json:"items"`
}

func (w *wireOrder) toEntity() *entity.Order {
	order := &entity.Order{
		ID:            w.id(),
		OrderNumber:   w.OrderNumber,
		Status:        w.Status,
		PaymentMethod: w.PaymentMethod,
		CreatedAt:     w.CreatedAt,
		Lines:         w.OrderItems,
	}

	switch {
	case w.TotalAmount != nil:
		order.TotalAmount = *w.TotalAmount
	case w.TotalPrice != nil:
		order.TotalAmount = *w.TotalPrice
	}

	if len(order.Lines) == 0 {
		order.Lines = w.Items
	}

	return order
}
