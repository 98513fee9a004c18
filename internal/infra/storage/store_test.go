package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"storefront/config"
	"storefront/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store repository.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, repository.KeyCart)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, repository.KeyCart, `[{"id":"p1"}]`))
	got, err := store.Get(ctx, repository.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, got)

	require.NoError(t, store.Set(ctx, repository.KeyCart, `[]`))
	got, err = store.Get(ctx, repository.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	require.NoError(t, store.Set(ctx, repository.KeyToken, "tok"))
	require.NoError(t, store.Delete(ctx, repository.KeyToken))
	_, err = store.Get(ctx, repository.KeyToken)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	assert.NoError(t, store.Delete(ctx, "never-written"))
}

func TestBlobStore_Memory(t *testing.T) {
	store, err := OpenBlobStore(context.Background(), "mem://", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestBlobStore_FileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	bucketURL := "file://" + filepath.Join(t.TempDir(), "state")

	first, err := OpenBlobStore(ctx, bucketURL, "kiosk")
	require.NoError(t, err)
	exerciseStore(t, first)
	require.NoError(t, first.Set(ctx, repository.KeyUser, `{"id":"u1"}`))
	require.NoError(t, first.Close())

	second, err := OpenBlobStore(ctx, bucketURL, "kiosk")
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Get(ctx, repository.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, got)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	store, err := OpenSQLiteStore(path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestSQLiteStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	a, err := OpenSQLiteStore(path, "a")
	require.NoError(t, err)
	require.NoError(t, a.Set(ctx, repository.KeyToken, "token-a"))
	require.NoError(t, a.Close())

	b, err := OpenSQLiteStore(path, "b")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	_, err = b.Get(ctx, repository.KeyToken)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewRedisStore(client, "")
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), repository.KeyToken, "tok"))
	got, err := mr.Get("storefront:token")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
	assert.Zero(t, mr.TTL("storefront:token"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := NewRedisStore(client, "")
	t.Cleanup(func() { _ = store.Close() })

	mr.Close()

	_, err := store.Get(context.Background(), repository.KeyCart)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestOpen_SelectsProvider(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr bool
	}{
		{name: "nil config", cfg: nil, wantErr: true},
		{name: "blob memory", cfg: func() *config.StorageConfig {
			c := &config.StorageConfig{Provider: ProviderBlob}
			c.Blob.URL = "mem://"

			return c
		}()},
		{name: "sqlite", cfg: func() *config.StorageConfig {
			c := &config.StorageConfig{Provider: ProviderSQLite}
			c.SQLite.Path = filepath.Join(t.TempDir(), "kv.db")

			return c
		}()},
		{name: "sqlite without path", cfg: &config.StorageConfig{Provider: ProviderSQLite}, wantErr: true},
		{name: "redis", cfg: func() *config.StorageConfig {
			c := &config.StorageConfig{Provider: ProviderRedis}
			c.Redis.Addr = mr.Addr()

			return c
		}()},
		{name: "redis without addr", cfg: &config.StorageConfig{Provider: ProviderRedis}, wantErr: true},
		{name: "postgres without dsn", cfg: &config.StorageConfig{Provider: ProviderPostgres}, wantErr: true},
		{name: "mysql without dsn", cfg: &config.StorageConfig{Provider: ProviderMySQL}, wantErr: true},
		{name: "unknown", cfg: &config.StorageConfig{Provider: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.cfg, slog.New(slog.DiscardHandler))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, store)

				return
			}
			require.NoError(t, err)
			assert.NoError(t, store.Close())
		})
	}
}
