package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// StoredSession is the raw persisted session. Either half may be missing or,
// for the user record, unparseable; callers decide what a partial state means.
type StoredSession struct {
	Token    string
	HasToken bool
	User     *entity.User
	HasUser  bool
	// UserErr is set when the user record exists but cannot be decoded.
	UserErr error
}

// SessionRepository persists the bearer token and user record under separate keys.
type SessionRepository interface {
	// Load reads both keys. Only storage failures are returned as errors.
	Load(ctx context.Context) (*StoredSession, error)

	// Save writes token and user.
	Save(ctx context.Context, token string, user *entity.User) error

	// SaveUser overwrites the user record only.
	SaveUser(ctx context.Context, user *entity.User) error

	// Clear deletes both keys.
	Clear(ctx context.Context) error
}
