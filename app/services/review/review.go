// Package review manages the queue of low-confidence detections waiting
// for a human to confirm or correct.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/caiatext/langident/app/models"
	"github.com/caiatext/langident/internal/idgen"
	"github.com/caiatext/langident/internal/reviewindex"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Service struct {
	collection *mongo.Collection
	index      *reviewindex.Index
	logger     *zap.Logger
}

func NewService(db *mongo.Database, index *reviewindex.Index, logger *zap.Logger) (*Service, error) {
	collection := db.Collection("detection_review")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	if err != nil {
		logger.Warn("could not create detection_review indexes", zap.Error(err))
	}
	return &Service{collection: collection, index: index, logger: logger}, nil
}

// Enqueue persists a low-confidence result and indexes it for reviewer
// search. The generated review ID is returned for the caller to surface
// in its response.
func (s *Service) Enqueue(ctx context.Context, text string, result models.DetectionResult) (string, error) {
	item := models.NewDetectionReview(idgen.NewID(), text, result)
	if _, err := s.collection.InsertOne(ctx, item); err != nil {
		return "", fmt.Errorf("review: insert: %w", err)
	}
	if err := s.index.Upsert(item); err != nil {
		s.logger.Warn("failed to index review item", zap.Error(err), zap.String("id", item.ID))
	}
	return item.ID, nil
}

// Approve marks a pending item as reviewer-confirmed and drops it from
// the searchable backlog.
func (s *Service) Approve(ctx context.Context, id, reviewerID string) error {
	return s.resolve(ctx, id, func(item *models.DetectionReview) { item.Approve(reviewerID) })
}

// Correct marks a pending item with the reviewer's chosen language.
func (s *Service) Correct(ctx context.Context, id, reviewerID, lang string) error {
	return s.resolve(ctx, id, func(item *models.DetectionReview) { item.Correct(reviewerID, lang) })
}

func (s *Service) resolve(ctx context.Context, id string, apply func(*models.DetectionReview)) error {
	var item models.DetectionReview
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return fmt.Errorf("review: find %s: %w", id, err)
	}
	apply(&item)

	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": id}, item)
	if err != nil {
		return fmt.Errorf("review: update %s: %w", id, err)
	}
	if err := s.index.Remove(id); err != nil {
		s.logger.Warn("failed to remove resolved item from index", zap.Error(err), zap.String("id", id))
	}
	return nil
}

// Pending returns up to limit items still awaiting review, most recent
// first.
func (s *Service) Pending(ctx context.Context, limit int) ([]models.DetectionReview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cur, err := s.collection.Find(ctx, bson.M{"status": models.ReviewStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("review: query pending: %w", err)
	}
	defer cur.Close(ctx)

	var items []models.DetectionReview
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("review: decode pending: %w", err)
	}
	return items, nil
}

// Search delegates to the Meilisearch-backed index for reviewer-facing
// full-text lookup over the pending backlog.
func (s *Service) Search(query string, limit int) ([]string, error) {
	return s.index.SearchPending(query, models.ReviewStatusPending, limit)
}
