package db

import (
	"context"
	"fmt"

	"github.com/windoze95/vanadisheart-api/internal/config"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/repository"
	"github.com/windoze95/vanadisheart-api/internal/s3"
	"go.uber.org/zap"
)

// redisKeyPrefix namespaces every key the app writes to a shared Redis.
const redisKeyPrefix = "vanadisheart:"

// NewStore opens the key-value store selected by STORE_BACKEND. The returned
// close function releases the backend's connections.
func NewStore(ctx context.Context, cfg *config.Config) (repository.Store, func() error, error) {
	noop := func() error { return nil }
	backend := cfg.EnvVars.StoreBackend

	logger.Get().Info("opening store", zap.String("backend", backend))

	switch backend {
	case config.StoreMemory:
		return repository.NewMemoryStore(), noop, nil

	case config.StorePostgres:
		database, err := New(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return repository.NewGormStore(database), sqlDB.Close, nil

	case config.StoreRedis:
		client, err := NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisStore(client, redisKeyPrefix, cfg.EnvVars.RedisTTL), client.Close, nil

	case config.StoreS3:
		store, err := s3.NewStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", backend)
}
