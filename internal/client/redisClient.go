package client

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedisClient returns nil when no address is configured or the server is
// unreachable; callers treat a nil client as "run without cache".
func InitRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, running without cache: %v", addr, err)
		_ = rdb.Close()
		return nil
	}

	return rdb
}
