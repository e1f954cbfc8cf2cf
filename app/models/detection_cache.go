package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DetectionCache is the persisted record of a past detection call,
// keyed on a hash fingerprint of the request rather than the raw text.
// Only requests with exactly the same text, source tag and profile
// version share an entry.
type DetectionCache struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint    string             `bson:"fingerprint" json:"fingerprint"`
	Result         DetectionResult    `bson:"result" json:"result"`
	ProfileVersion string             `bson:"profile_version" json:"profile_version"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed   time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount    int                `bson:"access_count" json:"access_count"`
}

// NewDetectionCache builds a fresh cache record for a just-computed
// result.
func NewDetectionCache(fingerprint string, result DetectionResult, profileVersion string) *DetectionCache {
	now := time.Now()
	return &DetectionCache{
		Fingerprint:    fingerprint,
		Result:         result,
		ProfileVersion: profileVersion,
		CreatedAt:      now,
		LastAccessed:   now,
		AccessCount:    1,
	}
}

// UpdateAccess records a cache hit.
func (c *DetectionCache) UpdateAccess() {
	c.LastAccessed = time.Now()
	c.AccessCount++
}

// IsStale reports whether the cache entry is older than ttl or was built
// against a profile set that has since been superseded.
func (c *DetectionCache) IsStale(ttl time.Duration, currentProfileVersion string) bool {
	if time.Since(c.CreatedAt) > ttl {
		return true
	}
	return c.ProfileVersion != currentProfileVersion
}
