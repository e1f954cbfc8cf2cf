package models

import "time"

const (
	ReviewStatusPending  = "pending"
	ReviewStatusInReview = "in_review"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// DetectionReview is a low-confidence detection queued for a human to
// confirm or correct, indexed in Meilisearch so reviewers can search the
// backlog by source text or suspected language.
type DetectionReview struct {
	ID           string    `bson:"_id" json:"id"`
	Text         string    `bson:"text" json:"text"`
	AutoResult   DetectionResult `bson:"auto_result" json:"auto_result"`
	ManualLang   *string   `bson:"manual_lang,omitempty" json:"manual_lang,omitempty"`
	Status       string    `bson:"status" json:"status"`
	ReviewerID   *string   `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewedAt   *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// NewDetectionReview queues an auto-classified result for review.
func NewDetectionReview(id, text string, result DetectionResult) *DetectionReview {
	return &DetectionReview{
		ID:         id,
		Text:       text,
		AutoResult: result,
		Status:     ReviewStatusPending,
		CreatedAt:  time.Now(),
	}
}

// Approve records reviewer agreement with the automatic result.
func (r *DetectionReview) Approve(reviewerID string) {
	r.Status = ReviewStatusApproved
	r.ReviewerID = &reviewerID
	now := time.Now()
	r.ReviewedAt = &now
}

// Correct records a reviewer override of the automatic result.
func (r *DetectionReview) Correct(reviewerID, lang string) {
	r.ManualLang = &lang
	r.Status = ReviewStatusRejected
	r.ReviewerID = &reviewerID
	now := time.Now()
	r.ReviewedAt = &now
}

// IsPending reports whether the review is still waiting for a reviewer.
func (r *DetectionReview) IsPending() bool {
	return r.Status == ReviewStatusPending
}
