// Package store opens the key-value backend selected in the configuration.
package store

import (
	"context"
	"fmt"

	"github.com/bitfantasy/linedash/internal/config"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is an open backend. Close releases its connections.
type Store struct {
	repository.KVStore
	Driver string
	closer func() error
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Open connects the backend named by cfg.Store.Driver. SQL backends are
// migrated before use.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		log.Warn("Using in-memory store, data is lost on restart")
		return &Store{KVStore: repository.NewMemoryStore(), Driver: config.DriverMemory}, nil

	case config.DriverRedis:
		rdb := initRedis(cfg.Redis)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("Redis store connected", zap.String("addr", cfg.Redis.Addr()), zap.String("prefix", cfg.Store.KeyPrefix))
		return &Store{
			KVStore: repository.NewRedisStore(rdb, cfg.Store.KeyPrefix),
			Driver:  config.DriverRedis,
			closer:  rdb.Close,
		}, nil

	case config.DriverPostgres:
		db, err := initDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Info("Postgres store connected", zap.String("host", cfg.Database.Host), zap.String("dbname", cfg.Database.DBName))
		return gormStore(db, config.DriverPostgres)

	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Store.SQLitePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite %s: %w", cfg.Store.SQLitePath, err)
		}
		log.Info("SQLite store opened", zap.String("path", cfg.Store.SQLitePath))
		return gormStore(db, config.DriverSQLite)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func gormStore(db *gorm.DB, driver string) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	kv := repository.NewGormStore(db)
	if err := kv.AutoMigrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &Store{KVStore: kv, Driver: driver, closer: sqlDB.Close}, nil
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
