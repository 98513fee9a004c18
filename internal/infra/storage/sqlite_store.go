package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
)`

// sqliteStore is a single-table key/value file.
type sqliteStore struct {
	db        *sql.DB
	namespace string
}

// OpenSQLiteStore creates or opens the database at path.
func OpenSQLiteStore(path, namespace string) (repository.KeyValueStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrapf(err, "create sqlite dir %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.CloseAfter(errors.Wrap(err, "connect sqlite"), db)
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		return nil, errors.CloseAfter(err, db)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, errors.CloseAfter(errors.Wrap(err, "apply sqlite schema"), db)
	}

	return &sqliteStore{db: db, namespace: namespace}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errors.Wrapf(err, "execute %q", pragma)
		}
	}

	return nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "sqlite get %s", key)
	}

	return value, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key(key), value)
	if err != nil {
		return errors.Wrapf(err, "sqlite set %s", key)
	}

	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, s.key(key)); err != nil {
		return errors.Wrapf(err, "sqlite delete %s", key)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}

	return errors.WithStack(s.db.Close())
}

func (s *sqliteStore) key(key string) string {
	return namespacedKey(s.namespace, key, ":")
}
