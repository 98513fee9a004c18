package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// SessionUsecase owns the bearer token and the signed-in user.
type SessionUsecase interface {
	// Load restores a stored session optimistically and re-validates it in the background.
	Load(ctx context.Context)
	// WaitForRevalidation blocks until the background re-validation, if any, has resolved.
	WaitForRevalidation(ctx context.Context) error

	Register(ctx context.Context, input *service.Registration) (*entity.User, error)
	Login(ctx context.Context, input *service.Credentials) (*entity.User, error)
	// Logout is idempotent.
	Logout(ctx context.Context)

	IsAuthenticated() bool
	State() entity.SessionState
	CurrentUser() *entity.User
}
