package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-guide/internal/config"
	"career-guide/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// pingTimeout bounds the connectivity check made when the client is built.
const pingTimeout = 3 * time.Second

// NewRedisClient connects to the configured Redis server and pings it. The
// client is closed again when the ping fails.
func NewRedisClient(ctx context.Context, redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, errors.New("redis address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}

	logger.Get().Info("Connected to Redis", zap.String("address", redisCfg.Address), zap.Int("db", redisCfg.DB))
	return client, nil
}
