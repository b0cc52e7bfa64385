package cache

import (
	"context"
	"fmt"
	"time"

	"Rewind/config"
	"Rewind/logger"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces this application's entries in a shared Redis.
const keyPrefix = "rewind:stats:"

// RedisCache is the Redis-backed stats cache, selected when REDIS_HOST is
// configured. Values are the same serialized responses the memory cache
// holds; TTL is enforced by Redis itself.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg *config.Config, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get returns the cached value. Any Redis error is treated as a miss; the
// cache is an optimization, never a dependency.
func (c *RedisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("redis get failed", logger.String("key", key), logger.ErrorField(err))
		return nil, false
	}
	return val, true
}

// Set stores the value with the configured TTL.
func (c *RedisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		logger.Warn("redis set failed", logger.String("key", key), logger.ErrorField(err))
	}
}

// Flush removes every entry under the application prefix.
func (c *RedisCache) Flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("redis scan failed during flush", logger.ErrorField(err))
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warn("redis delete failed during flush", logger.ErrorField(err))
		}
	}
}

// Close releases the connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
