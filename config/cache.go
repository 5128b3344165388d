package config

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Cache *redis.Client

func ConnectCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	Cache = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// CacheGet returns the cached value, or nil on a miss or when redis is
// unavailable. Cache failures never fail the request.
func CacheGet(ctx context.Context, key string) []byte {
	if Cache == nil {
		return nil
	}
	res, err := Cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return res
}

// CacheSet stores value with a TTL, ignoring redis errors.
func CacheSet(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if Cache == nil {
		return
	}
	Cache.Set(ctx, key, value, ttl)
}

// CacheDelete removes a key, ignoring redis errors.
func CacheDelete(ctx context.Context, key string) {
	if Cache == nil {
		return
	}
	Cache.Del(ctx, key)
}
