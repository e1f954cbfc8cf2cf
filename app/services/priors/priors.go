// Package priors manages learned language biases keyed by a source tag
// (a tenant, a feed, a declared locale) so repeat traffic from a known
// source doesn't need to relearn its language from scratch every call.
package priors

import (
	"context"
	"fmt"
	"time"

	"github.com/caiatext/langident/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Service struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewService(db *mongo.Database, logger *zap.Logger) (*Service, error) {
	collection := db.Collection("prior_overrides")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "source_tag", Value: 1}, {Key: "lang", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Warn("could not create prior_overrides index", zap.Error(err))
	}
	return &Service{collection: collection, logger: logger}, nil
}

// PriorMap returns the source tag's learned language distribution as a
// map suitable for detect.WithPriors, normalizing the stored confidences
// so they sum to 1.
func (s *Service) PriorMap(ctx context.Context, sourceTag string) (map[string]float64, error) {
	cur, err := s.collection.Find(ctx, bson.M{"source_tag": sourceTag})
	if err != nil {
		return nil, fmt.Errorf("priors: query: %w", err)
	}
	defer cur.Close(ctx)

	var overrides []models.PriorOverride
	if err := cur.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("priors: decode: %w", err)
	}
	if len(overrides) == 0 {
		return nil, nil
	}

	var total float64
	for _, o := range overrides {
		total += o.Confidence
	}
	if total == 0 {
		return nil, nil
	}

	priorMap := make(map[string]float64, len(overrides))
	for _, o := range overrides {
		priorMap[o.Lang] = o.Confidence / total
	}
	return priorMap, nil
}

// Record upserts a usage observation: a new (sourceTag, lang) pair is
// inserted at the default confidence, an existing one has its usage
// counter bumped.
func (s *Service) Record(ctx context.Context, sourceTag, lang, source string) error {
	now := time.Now()
	filter := bson.M{"source_tag": sourceTag, "lang": lang}
	update := bson.M{
		"$setOnInsert": bson.M{"confidence": 0.8, "source": source, "created_at": now},
		"$set":         bson.M{"last_used": now},
		"$inc":         bson.M{"usage_count": 1},
	}
	_, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("priors: record usage: %w", err)
	}
	return nil
}

// SetConfidence manually overrides the learned confidence for a
// (sourceTag, lang) pair, used by an operator correcting a bad prior.
func (s *Service) SetConfidence(ctx context.Context, sourceTag, lang string, confidence float64) error {
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("priors: confidence must be in [0,1], got %v", confidence)
	}
	filter := bson.M{"source_tag": sourceTag, "lang": lang}
	update := bson.M{"$set": bson.M{"confidence": confidence, "source": models.PriorSourceManual}}
	_, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
