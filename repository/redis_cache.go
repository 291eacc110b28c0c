package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "forecast:"

// RedisCache stores snappy-compressed values under a shared key prefix.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	prefix string
}

func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
		prefix: redisKeyPrefix,
	}
}

// Ping checks connectivity so callers can fall back to a memory cache.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(key string) (string, bool) {
	raw, err := r.client.Get(r.ctx, r.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: redis get %q failed: %v", key, err)
		}
		return "", false
	}
	val, err := snappy.Decode(nil, raw)
	if err != nil {
		log.Printf("Warning: corrupt cache entry %q: %v", key, err)
		return "", false
	}
	return string(val), true
}

func (r *RedisCache) Set(key string, value string, ttl time.Duration) error {
	encoded := snappy.Encode(nil, []byte(value))
	if err := r.client.Set(r.ctx, r.prefix+key, encoded, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
