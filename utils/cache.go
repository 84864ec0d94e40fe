// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"slotify/config"
)

// IdempotencyClient is the redis client backing the booking idempotency store.
var IdempotencyClient *redis.Client

// InitRedis initializes the redis client for idempotency-key storage.
func InitRedis() {
	IdempotencyClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisIdempotencyDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := IdempotencyClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Idempotency): %v", err)
	}
}

// GetIdempotencyClient returns the redis client for idempotency-key storage.
func GetIdempotencyClient() *redis.Client {
	if IdempotencyClient == nil {
		InitRedis()
	}
	return IdempotencyClient
}
