package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tracker/backend/config"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"

	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// Open builds the KV backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KV, error) {
	switch cfg.StorageDriver {
	case "", DriverMemory:
		logger.Info("storage_selected", zap.String("driver", DriverMemory))
		return NewMemoryKV(), nil
	case DriverPostgres, DriverSQLite:
		db, err := InitDB(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return NewGormKV(db)
	case DriverRedis:
		client, err := NewRedisClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisKV(client), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// InitDB opens the SQL database, retrying while the server comes up.
func InitDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	}

	gormLog := gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := gorm.Open(dialector, &gorm.Config{
			Logger:  gormLog,
			NowFunc: func() time.Time { return time.Now().UTC() },
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if dbErr = sqlDB.PingContext(ctx); dbErr == nil {
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetMaxOpenConns(100)
					sqlDB.SetConnMaxLifetime(time.Hour)
					logger.Info("database_connected",
						zap.String("driver", cfg.StorageDriver),
						zap.Int("attempt", attempt),
					)
					return db, nil
				}
			}
			err = dbErr
		}
		lastErr = err

		logger.Warn("database_connect_retry",
			zap.String("driver", cfg.StorageDriver),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	return nil, fmt.Errorf("connect to %s after %d attempts: %w", cfg.StorageDriver, connectAttempts, lastErr)
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis_connection_failed",
			zap.Error(err),
			zap.String("addr", cfg.RedisAddr),
		)
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("redis_connected", zap.String("addr", cfg.RedisAddr))
	return client, nil
}
