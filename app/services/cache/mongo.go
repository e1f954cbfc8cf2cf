package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/caiatext/langident/app/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCache is the L3, persistent tier, fronted by its own small LRU so
// a hot key doesn't round-trip to MongoDB on every request even when
// Redis is unavailable.
type MongoCache struct {
	collection *mongo.Collection
	l1         *lru.Cache[string, *models.DetectionCache]
	logger     *zap.Logger

	hits, miss int64
}

// NewMongoCache creates the detection_cache collection's indexes if
// missing and wraps it with an l1Size-entry in-process LRU.
func NewMongoCache(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCache, error) {
	l1, err := lru.New[string, *models.DetectionCache](l1Size)
	if err != nil {
		return nil, fmt.Errorf("cache: create lru: %w", err)
	}

	collection := db.Collection("detection_cache")
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "fingerprint", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "profile_version", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create detection_cache indexes", zap.Error(err))
	}

	return &MongoCache{collection: collection, l1: l1, logger: logger}, nil
}

func (c *MongoCache) Get(ctx context.Context, key string) (*models.DetectionCache, bool, error) {
	if entry, ok := c.l1.Get(key); ok {
		c.hits++
		return entry, true, nil
	}

	var entry models.DetectionCache
	err := c.collection.FindOne(ctx, bson.M{"fingerprint": key}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.miss++
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: query mongo: %w", err)
	}
	c.hits++
	c.l1.Add(key, &entry)
	go c.bumpAccess(entry.ID)
	return &entry, true, nil
}

func (c *MongoCache) Set(ctx context.Context, key string, entry *models.DetectionCache) error {
	c.l1.Add(key, entry)

	opts := options.Replace().SetUpsert(true)
	_, err := c.collection.ReplaceOne(ctx, bson.M{"fingerprint": key}, entry, opts)
	if err != nil {
		return fmt.Errorf("cache: upsert mongo entry: %w", err)
	}
	return nil
}

func (c *MongoCache) Delete(ctx context.Context, key string) error {
	c.l1.Remove(key)
	_, err := c.collection.DeleteOne(ctx, bson.M{"fingerprint": key})
	return err
}

func (c *MongoCache) Clear(ctx context.Context) error {
	c.l1.Purge()
	_, err := c.collection.DeleteMany(ctx, bson.M{})
	c.hits, c.miss = 0, 0
	return err
}

func (c *MongoCache) InvalidateByProfileVersion(ctx context.Context, profileVersion string) error {
	c.l1.Purge()
	res, err := c.collection.DeleteMany(ctx, bson.M{"profile_version": bson.M{"$ne": profileVersion}})
	if err != nil {
		return fmt.Errorf("cache: invalidate by profile version: %w", err)
	}
	c.logger.Info("invalidated stale detection cache entries",
		zap.String("profile_version", profileVersion), zap.Int64("deleted", res.DeletedCount))
	return nil
}

func (c *MongoCache) GetStats(ctx context.Context) (*Stats, error) {
	count, err := c.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cache: count mongo entries: %w", err)
	}
	total := c.hits + c.miss
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return &Stats{HitRate: hitRate, TotalHits: c.hits, TotalMiss: c.miss, TotalItems: count}, nil
}

func (c *MongoCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (c *MongoCache) Close() error { return nil }

// WarmUp preloads the L1 LRU with the most recently accessed entries so
// a fresh process doesn't start cold.
func (c *MongoCache) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().SetSort(bson.D{{Key: "last_accessed", Value: -1}}).SetLimit(int64(limit))
	cur, err := c.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("cache: warm up query: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var entry models.DetectionCache
		if err := cur.Decode(&entry); err != nil {
			continue
		}
		c.l1.Add(entry.Fingerprint, &entry)
	}
	return cur.Err()
}

func (c *MongoCache) bumpAccess(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = c.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	})
}
