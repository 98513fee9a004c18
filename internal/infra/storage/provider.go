// Package storage provides the durable key-value backends for client state.
package storage

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"go.uber.org/fx"
)

const (
	ProviderBlob     = "blob"
	ProviderSQLite   = "sqlite"
	ProviderRedis    = "redis"
	ProviderPostgres = "postgres"
	ProviderMySQL    = "mysql"
)

// Open builds the store selected by cfg.Provider.
func Open(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (repository.KeyValueStore, error) {
	if cfg == nil {
		return nil, errors.New("storage is not configured")
	}

	switch cfg.Provider {
	case ProviderBlob, "":
		return OpenBlobStore(ctx, cfg.Blob.URL, cfg.Namespace)

	case ProviderSQLite:
		if cfg.SQLite.Path == "" {
			return nil, errors.New("sqlite path is required for sqlite provider")
		}

		return OpenSQLiteStore(cfg.SQLite.Path, cfg.Namespace)

	case ProviderRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New("redis addr is required for redis provider")
		}

		return OpenRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Namespace)

	case ProviderPostgres:
		if cfg.Postgres.DSN == "" {
			return nil, errors.New("postgres dsn is required for postgres provider")
		}

		return OpenPostgresStore(ctx, cfg.Postgres.DSN, cfg.Namespace, logger)

	case ProviderMySQL:
		if cfg.MySQL.DSN == "" {
			return nil, errors.New("mysql dsn is required for mysql provider")
		}

		return OpenMySQLStore(ctx, cfg.MySQL.DSN, cfg.Namespace, logger)

	default:
		return nil, errors.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

// StoreParams holds dependencies for the key-value store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewKeyValueStore opens the configured store and closes it on shutdown.
func NewKeyValueStore(params StoreParams) (repository.KeyValueStore, error) {
	cfg := params.Config.Storage
	logger := params.Logger

	store, err := Open(params.Ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Key-value store opened",
		slog.String("provider", cfg.Provider),
		slog.String("namespace", cfg.Namespace),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debug("Closing key-value store")

			return store.Close()
		},
	})

	return store, nil
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewKeyValueStore),
)

func namespacedKey(namespace, key, sep string) string {
	if namespace == "" {
		return key
	}

	return namespace + sep + key
}
