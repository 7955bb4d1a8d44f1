// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"warrantydesk/config"

	"github.com/go-redis/redis/v8"
)

// DraftCacheClient is the dedicated client for appointment-draft snapshots.
var DraftCacheClient *redis.Client

// InitDraftCache initializes the Redis client backing draft snapshots.
func InitDraftCache() {
	DraftCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DraftCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Draft Cache): %v", err)
	}
}

// GetDraftCacheClient returns the draft snapshot client.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		InitDraftCache()
	}
	return DraftCacheClient
}
