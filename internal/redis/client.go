package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/abilic/ordergate/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to the redis instance backing the idempotency store.
// Startup tolerates a redis that is still coming up: the ping is retried with
// a linearly growing delay before giving up.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	if err := awaitPing(ctx, client, cfg); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func awaitPing(ctx context.Context, client *redis.Client, cfg *config.RedisConfig) error {
	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 5
	}
	delay := cfg.ConnectRetryDelay
	if delay <= 0 {
		delay = time.Second
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * delay):
		}
	}
	return fmt.Errorf("redis unreachable after %d attempts: %w", attempts, err)
}
