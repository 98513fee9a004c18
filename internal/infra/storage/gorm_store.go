package storage

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sqlPingTimeout = 5 * time.Second

// kvRecord is one stored value, keyed by namespace and key.
type kvRecord struct {
	Namespace string    `gorm:"primaryKey;size:128"`
	ItemKey   string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (kvRecord) TableName() string {
	return "storefront_kv"
}

// gormStore keeps client state in a shared SQL server table.
type gormStore struct {
	db        *gorm.DB
	namespace string
}

// OpenPostgresStore connects to PostgreSQL with dsn.
func OpenPostgresStore(ctx context.Context, dsn, namespace string, logger *slog.Logger) (repository.KeyValueStore, error) {
	store, err := openGormStore(ctx, postgres.Open(dsn), namespace, logger)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// OpenMySQLStore connects to MySQL with dsn. The DSN needs parseTime=true.
func OpenMySQLStore(ctx context.Context, dsn, namespace string, logger *slog.Logger) (repository.KeyValueStore, error) {
	store, err := openGormStore(ctx, mysql.Open(dsn), namespace, logger)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func openGormStore(ctx context.Context, dialector gorm.Dialector, namespace string, logger *slog.Logger) (*gormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		// Every operation is a single statement.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", dialector.Name())
	}

	store := &gormStore{db: db, namespace: namespace}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, sqlPingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, errors.CloseAfter(errors.Wrapf(err, "ping %s", dialector.Name()), sqlDB)
	}

	if err := db.WithContext(ctx).AutoMigrate(&kvRecord{}); err != nil {
		return nil, errors.CloseAfter(errors.Wrap(err, "migrate storefront_kv"), sqlDB)
	}

	return store, nil
}

func (s *gormStore) Get(ctx context.Context, key string) (string, error) {
	var record kvRecord
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND item_key = ?", s.namespace, key).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "sql get %s", key)
	}

	return record.Value, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	record := kvRecord{
		Namespace: s.namespace,
		ItemKey:   key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "item_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return errors.Wrapf(err, "sql set %s", key)
	}

	return nil
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND item_key = ?", s.namespace, key).
		Delete(&kvRecord{}).Error
	if err != nil {
		return errors.Wrapf(err, "sql delete %s", key)
	}

	return nil
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(sqlDB.Close())
}
