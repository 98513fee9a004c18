package api

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

func (c *Client) Register(ctx context.Context, input *service.Registration) (*service.AuthResult, error) {
	raw, err := c.call(ctx, http.MethodPost, "/auth/register", input, false)
	if err != nil {
		return nil, err
	}

	return c.decodeAuth(raw)
}

func (c *Client) Login(ctx context.Context, input *service.Credentials) (*service.AuthResult, error) {
	raw, err := c.call(ctx, http.MethodPost, "/auth/login", input, false)
	if err != nil {
		return nil, err
	}

	return c.decodeAuth(raw)
}

func (c *Client) GetProfile(ctx context.Context) (*entity.User, error) {
	raw, err := c.call(ctx, http.MethodGet, "/auth/me", nil, true)
	if err != nil {
		return nil, err
	}

	user, err := decodeUser(member(raw, "user"))
	if err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}
	if err := c.validate.Struct(user); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails("profile without id")
	}

	return user, nil
}

// decodeAuth reads {token|accessToken, user}; the user may also be the body itself.
func (c *Client) decodeAuth(raw json.RawMessage) (*service.AuthResult, error) {
	var body authBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}

	userRaw := raw
	if isObject(body.User) {
		userRaw = body.User
	}

	user, err := decodeUser(userRaw)
	if err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails(err.Error())
	}

	token := body.token()
	if token == "" {
		return nil, domainerrors.ErrInvalidResponse.WithDetails("missing token")
	}
	if err := c.validate.Struct(user); err != nil {
		return nil, domainerrors.ErrInvalidResponse.WithDetails("missing user")
	}

	return &service.AuthResult{Token: token, User: user}, nil
}
