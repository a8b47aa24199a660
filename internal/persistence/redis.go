package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/faculty-workload/internal/config"
)

// ErrRedisDisabled is returned when no Redis address was configured.
var ErrRedisDisabled = errors.New("redis client not configured")

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
	seqKey string
}

// NewRedis connects to Redis using the provided configuration. It returns nil
// when Redis is disabled.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if !cfg.Enabled() {
		logger.Info("REDIS_ADDR not provided; using process-local load generations")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return NewRedisWithClient(client, cfg.SeqKey)
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, seqKey string) *Redis {
	if seqKey == "" {
		seqKey = "workload:load-generation"
	}
	return &Redis{Client: client, seqKey: seqKey}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return ErrRedisDisabled
	}
	return r.Client.Ping(ctx).Err()
}

// Next increments the shared load generation counter, so generations stay
// ordered across restarts and across replicas.
func (r *Redis) Next(ctx context.Context) (uint64, error) {
	if r == nil || r.Client == nil {
		return 0, ErrRedisDisabled
	}
	n, err := r.Client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", r.seqKey, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("incr %s: non-positive generation %d", r.seqKey, n)
	}
	return uint64(n), nil
}
