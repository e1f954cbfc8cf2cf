// Package reviewindex makes the low-confidence detection backlog
// searchable: reviewers look up pending items by source text or status
// instead of scanning a raw collection dump.
package reviewindex

import (
	"fmt"

	"github.com/caiatext/langident/app/models"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

type Index struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
}

func New(host, apiKey, indexName string, logger *zap.Logger) (*Index, error) {
	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("reviewindex: cannot reach meilisearch: %w", err)
	}
	return &Index{client: client, logger: logger, indexName: indexName}, nil
}

// Configure sets up searchable/filterable attributes for the review
// backlog. Call once at startup; safe to call repeatedly since
// Meilisearch settings updates are idempotent.
func (idx *Index) Configure() error {
	index := idx.client.Index(idx.indexName)
	_, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"text"},
		FilterableAttributes: []string{"status", "auto_result.lang"},
		SortableAttributes:   []string{"created_at"},
	})
	if err != nil {
		return fmt.Errorf("reviewindex: configure settings: %w", err)
	}
	return nil
}

// Upsert indexes or re-indexes a single review item.
func (idx *Index) Upsert(review *models.DetectionReview) error {
	index := idx.client.Index(idx.indexName)
	doc := map[string]interface{}{
		"id":               review.ID,
		"text":             review.Text,
		"status":           review.Status,
		"auto_result.lang": review.AutoResult.Lang,
		"created_at":       review.CreatedAt.Unix(),
	}
	_, err := index.AddDocuments([]map[string]interface{}{doc}, "id")
	if err != nil {
		return fmt.Errorf("reviewindex: upsert: %w", err)
	}
	return nil
}

// Remove deletes a review item from the index once it leaves the
// backlog (approved or rejected).
func (idx *Index) Remove(id string) error {
	index := idx.client.Index(idx.indexName)
	_, err := index.DeleteDocument(id)
	if err != nil {
		return fmt.Errorf("reviewindex: delete: %w", err)
	}
	return nil
}

// SearchPending returns review item IDs matching query, restricted to a
// given status (typically "pending").
func (idx *Index) SearchPending(query, status string, limit int) ([]string, error) {
	index := idx.client.Index(idx.indexName)
	req := &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: fmt.Sprintf("status = %q", status),
	}
	result, err := index.Search(query, req)
	if err != nil {
		return nil, fmt.Errorf("reviewindex: search: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := hitMap["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
