// Package cache implements the three-tier detection-result cache: an
// in-process LRU, a Redis layer, and a MongoDB layer, composable into a
// single Cache that checks each in turn and backfills the faster tiers
// on a slower-tier hit.
package cache

import (
	"context"
	"time"

	"github.com/caiatext/langident/app/models"
)

// Stats summarizes hit/miss counts across whichever tiers a Cache
// implementation wraps.
type Stats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// Cache is the common surface every tier (and the hybrid combining them)
// implements, keyed on the detection fingerprint computed by the
// orchestration service.
type Cache interface {
	Get(ctx context.Context, key string) (*models.DetectionCache, bool, error)
	Set(ctx context.Context, key string, entry *models.DetectionCache) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	InvalidateByProfileVersion(ctx context.Context, profileVersion string) error
	GetStats(ctx context.Context) (*Stats, error)
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	Close() error
}
