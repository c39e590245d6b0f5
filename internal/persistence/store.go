package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/agrolink/marketplace-service/internal/config"
)

// ErrKeyNotFound is returned by Get when no blob exists under the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is a flat key-value blob layer. Each key holds one opaque value;
// Set overwrites the whole blob, there are no partial updates and no
// versioning. Concurrent writers race and the last Set silently wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// NewStore builds the configured backend.
func NewStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendFile:
		return NewFileStore(cfg.Store.DataDir)
	case config.StoreBackendMemory:
		return NewMemoryStore(), nil
	case config.StoreBackendRedis:
		return NewRedisStore(cfg.Redis, logger), nil
	case config.StoreBackendPostgres:
		return NewPostgresStore(ctx, cfg.Postgres, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
