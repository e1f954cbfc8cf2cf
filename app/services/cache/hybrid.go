package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/caiatext/langident/app/models"
	"go.uber.org/zap"
)

// HybridCache checks Redis first, falls back to MongoCache (which has
// its own LRU front), and syncs a Mongo hit back up to Redis in the
// background so the next request for the same key is fast again.
type HybridCache struct {
	redis  *RedisCache
	mongo  *MongoCache
	logger *zap.Logger
}

func NewHybridCache(redis *RedisCache, mongo *MongoCache, logger *zap.Logger) *HybridCache {
	return &HybridCache{redis: redis, mongo: mongo, logger: logger}
}

func (h *HybridCache) Get(ctx context.Context, key string) (*models.DetectionCache, bool, error) {
	entry, found, err := h.redis.Get(ctx, key)
	if err != nil {
		h.logger.Warn("redis tier failed, falling back to mongo", zap.Error(err))
	} else if found {
		return entry, true, nil
	}

	entry, found, err = h.mongo.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.redis.Set(bgCtx, key, entry); err != nil {
			h.logger.Warn("failed to sync mongo hit back to redis", zap.Error(err), zap.String("key", key))
		}
	}()
	return entry, true, nil
}

func (h *HybridCache) Set(ctx context.Context, key string, entry *models.DetectionCache) error {
	errCh := make(chan error, 2)
	go func() { errCh <- h.redis.Set(ctx, key, entry) }()
	go func() { errCh <- h.mongo.Set(ctx, key, entry) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache: hybrid set errors: %v", errs)
	}
	return nil
}

func (h *HybridCache) Delete(ctx context.Context, key string) error {
	errCh := make(chan error, 2)
	go func() { errCh <- h.redis.Delete(ctx, key) }()
	go func() { errCh <- h.mongo.Delete(ctx, key) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache: hybrid delete errors: %v", errs)
	}
	return nil
}

func (h *HybridCache) Clear(ctx context.Context) error {
	if err := h.redis.Clear(ctx); err != nil {
		return err
	}
	return h.mongo.Clear(ctx)
}

func (h *HybridCache) InvalidateByProfileVersion(ctx context.Context, profileVersion string) error {
	if err := h.redis.InvalidateByProfileVersion(ctx, profileVersion); err != nil {
		return err
	}
	return h.mongo.InvalidateByProfileVersion(ctx, profileVersion)
}

func (h *HybridCache) GetStats(ctx context.Context) (*Stats, error) {
	redisStats, redisErr := h.redis.GetStats(ctx)
	mongoStats, mongoErr := h.mongo.GetStats(ctx)
	if redisErr != nil && mongoErr != nil {
		return nil, fmt.Errorf("cache: both tiers failed: %v, %v", redisErr, mongoErr)
	}
	if redisErr != nil {
		return mongoStats, nil
	}
	if mongoErr != nil {
		return redisStats, nil
	}
	combined := &Stats{
		TotalHits:  redisStats.TotalHits + mongoStats.TotalHits,
		TotalMiss:  redisStats.TotalMiss + mongoStats.TotalMiss,
		TotalItems: redisStats.TotalItems + mongoStats.TotalItems,
	}
	if total := combined.TotalHits + combined.TotalMiss; total > 0 {
		combined.HitRate = float64(combined.TotalHits) / float64(total)
	}
	return combined, nil
}

func (h *HybridCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return h.redis.GetTTL(ctx, key)
}

func (h *HybridCache) Close() error {
	errCh := make(chan error, 2)
	go func() { errCh <- h.redis.Close() }()
	go func() { errCh <- h.mongo.Close() }()
	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache: hybrid close errors: %v", errs)
	}
	return nil
}
