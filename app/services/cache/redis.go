package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caiatext/langident/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache is the L2 tier: shared across service instances, survives a
// process restart, but not the source of truth (Mongo is).
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

// NewRedisCache dials redisURL and verifies connectivity before
// returning, so a misconfigured cache fails fast at startup rather than
// on the first request.
func NewRedisCache(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cache: connect redis: %w", err)
	}

	return &RedisCache{client: client, logger: logger, prefix: "langident:", ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.DetectionCache, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err == redis.Nil {
		c.misses++
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("redis get failed", zap.Error(err), zap.String("key", key))
		return nil, false, err
	}
	var entry models.DetectionCache
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, false, fmt.Errorf("cache: unmarshal redis entry: %w", err)
	}
	c.hits++
	return &entry, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, entry *models.DetectionCache) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: marshal redis entry: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Error("redis set failed", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

func (c *RedisCache) Clear(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, c.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("cache: list redis keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// InvalidateByProfileVersion has no per-key profile tag in Redis, so it
// clears the tier outright; the slower Mongo tier is the one that keeps
// enough structure to invalidate selectively.
func (c *RedisCache) InvalidateByProfileVersion(ctx context.Context, profileVersion string) error {
	return c.Clear(ctx)
}

func (c *RedisCache) GetStats(ctx context.Context) (*Stats, error) {
	total := c.hits + c.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	keys, err := c.client.Keys(ctx, c.prefix+"*").Result()
	var items int64
	if err == nil {
		items = int64(len(keys))
	}
	return &Stats{HitRate: hitRate, TotalHits: c.hits, TotalMiss: c.misses, TotalItems: items}, nil
}

func (c *RedisCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, c.prefix+key).Result()
}

func (c *RedisCache) Close() error { return c.client.Close() }
