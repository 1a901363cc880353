package pricecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock-spike-analyzer/internal/types"
)

// RedisStore keeps price series as JSON values with a TTL
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Backend() string { return "redis" }

func (r *RedisStore) Get(ctx context.Context, key string) (types.PriceSeries, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.PriceSeries{}, false, nil
	}
	if err != nil {
		return types.PriceSeries{}, false, err
	}

	var series types.PriceSeries
	if err := json.Unmarshal(b, &series); err != nil {
		return types.PriceSeries{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return series, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, series types.PriceSeries, ttl time.Duration) error {
	b, err := json.Marshal(series)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, ttl).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
