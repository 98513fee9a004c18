package storage

import (
	"context"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:"

// redisStore keeps values as plain strings without expiry.
type redisStore struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient, namespace string) repository.KeyValueStore {
	return &redisStore{client: client, namespace: namespace}
}

// OpenRedisStore dials addr and verifies the connection.
func OpenRedisStore(ctx context.Context, addr, password string, db int, namespace string) (repository.KeyValueStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.CloseAfter(errors.Wrapf(err, "redis ping %s", addr), client)
	}

	return NewRedisStore(client, namespace), nil
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "redis get %s", key)
	}

	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}

	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrapf(err, "redis delete %s", key)
	}

	return nil
}

func (s *redisStore) Close() error {
	return errors.WithStack(s.client.Close())
}

func (s *redisStore) key(key string) string {
	return redisKeyPrefix + namespacedKey(s.namespace, key, ":")
}
