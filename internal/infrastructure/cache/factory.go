package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory connects to Redis once and hands out the stores built on it.
// When Redis is disabled or unreachable it falls back to in-memory stores.
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	pingTimeout           time.Duration

	client redis.UniversalClient
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// WithClient uses an existing Redis client instead of dialing one
func WithClient(client redis.UniversalClient) FactoryOption {
	return func(f *Factory) {
		f.client = client
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		pingTimeout:           5 * time.Second,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Connect dials Redis when it is enabled. With fallback allowed a failed
// dial is logged and the factory keeps serving in-memory stores.
func (f *Factory) Connect(ctx context.Context) error {
	if f.client != nil || !f.redisConfig.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !f.allowInMemoryFallback {
			return fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory caches. "+
			"Reports and idempotency keys will not be shared between instances.",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err),
		)
		return nil
	}

	f.logger.Info("connected to Redis", zap.String("addr", f.redisConfig.Addr()))
	f.client = client
	return nil
}

// UsingRedis reports whether stores are backed by Redis
func (f *Factory) UsingRedis() bool {
	return f.client != nil
}

// Ping checks the Redis connection. Without Redis there is nothing to check.
func (f *Factory) Ping(ctx context.Context) error {
	if f.client == nil {
		return nil
	}
	return f.client.Ping(ctx).Err()
}

// ReportCache returns the report cache for the current backend
func (f *Factory) ReportCache() ReportCache {
	if f.client != nil {
		return NewRedisReportCache(f.client, ReportKeyPrefix)
	}
	return NewInMemoryReportCache()
}

// IdempotencyStore returns the idempotency store for the current backend.
// WARNING: in-memory stores do not share state across process instances.
func (f *Factory) IdempotencyStore() shared.IdempotencyStore {
	if f.client != nil {
		return NewRedisIdempotencyStoreWithClient(f.client, IdempotencyKeyPrefix)
	}
	return NewInMemoryIdempotencyStore()
}

// Close closes the Redis client, if any
func (f *Factory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}
