package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/openqpu/pulsecheck/pkg/validator"
)

const redisKeyPrefix = "pulsecheck:report:"

// RedisCache shares validation reports across service replicas.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a redis-backed result cache and verifies the
// connection.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB >= 0 {
		opts.DB = cfg.RedisDB
	}
	if cfg.RedisPoolSize > 0 {
		opts.PoolSize = cfg.RedisPoolSize
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

// Get retrieves a cached report
func (c *RedisCache) Get(ctx context.Context, key string) (*validator.Report, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var report validator.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		// Corrupt entries are dropped rather than served
		c.client.Del(ctx, redisKeyPrefix+key)
		return nil, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}
	return &report, nil
}

// Set stores a report
func (c *RedisCache) Set(ctx context.Context, key string, report *validator.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err()
}

// Client exposes the underlying redis client for health checks.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close releases the redis connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}
