package kv

import (
	"context"
	"encoding/json"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

type sessionRepository struct {
	store repository.KeyValueStore
}

// NewSessionRepository stores the raw token under "token" and the user record as JSON under "user".
func NewSessionRepository(store repository.KeyValueStore) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Load(ctx context.Context) (*repository.StoredSession, error) {
	stored := &repository.StoredSession{}

	token, err := r.store.Get(ctx, repository.KeyToken)
	switch {
	case err == nil:
		stored.Token = token
		stored.HasToken = token != ""
	case !errors.Is(err, repository.ErrKeyNotFound):
		return nil, err
	}

	raw, err := r.store.Get(ctx, repository.KeyUser)
	switch {
	case err == nil:
		stored.HasUser = true
		stored.User, stored.UserErr = decodeUser(raw)
	case !errors.Is(err, repository.ErrKeyNotFound):
		return nil, err
	}

	return stored, nil
}

func (r *sessionRepository) Save(ctx context.Context, token string, user *entity.User) error {
	if err := r.store.Set(ctx, repository.KeyToken, token); err != nil {
		return err
	}

	return r.SaveUser(ctx, user)
}

func (r *sessionRepository) SaveUser(ctx context.Context, user *entity.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "encode user")
	}

	return r.store.Set(ctx, repository.KeyUser, string(data))
}

// Clear attempts both deletes and reports the first failure.
func (r *sessionRepository) Clear(ctx context.Context) error {
	tokenErr := r.store.Delete(ctx, repository.KeyToken)
	userErr := r.store.Delete(ctx, repository.KeyUser)

	return errors.Join(tokenErr, userErr)
}

func decodeUser(raw string) (*entity.User, error) {
	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, errors.Wrap(err, "decode stored user")
	}
	if user.ID.IsZero() {
		return nil, errors.New("stored user has no id")
	}

	return &user, nil
}
