package redis

import (
	"context"
	"fmt"
	"time"

	"matrimony-backend/internal/common/config"
	"matrimony-backend/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().
		Str("addr", cfg.RedisAddr()).
		Int("db", cfg.Redis.DB).
		Msg("Redis client initialized")

	return client, nil
}
