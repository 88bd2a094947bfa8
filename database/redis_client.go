package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"super-app-media/conf"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// Cache Redis-backed cache. A nil *Cache (or a disabled config) degrades to
// a no-op: sets are skipped and gets report a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache initialize Redis cache client
func NewCache(cfg *conf.RedisConfig) *Cache {
	if !cfg.Enabled {
		log.Println("Redis cache is disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Failed to connect to Redis: %v", err)
		log.Println("Redis cache will be disabled")
		return nil
	}

	log.Printf("✅ Redis connected successfully: %s:%d (DB: %d, TTL: %ds)",
		cfg.Host, cfg.Port, cfg.DB, cfg.CacheTTL)

	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.CacheTTL) * time.Second,
	}
}

// Close close Redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Set set cache with TTL
func (c *Cache) Set(key string, value interface{}) error {
	if c == nil {
		return nil // Cache disabled, skip silently
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("⚠️  Failed to set cache for key %s: %v", key, err)
		return err
	}

	return nil
}

// Get get cache by key
func (c *Cache) Get(key string, dest interface{}) error {
	if c == nil {
		return redis.Nil // Cache disabled, return nil (cache miss)
	}

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err // redis.Nil if key not found
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return nil
}

// Delete delete cache by key
func (c *Cache) Delete(key string) error {
	if c == nil {
		return nil // Cache disabled, skip silently
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Printf("⚠️  Failed to delete cache for key %s: %v", key, err)
		return err
	}

	return nil
}
