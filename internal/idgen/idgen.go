// Package idgen generates identifiers for review queue items and
// profile-reload jobs. It stays on crypto/rand rather than pulling in a
// UUID library since the teacher code it is adapted from did the same —
// a 16-byte random value formatted as UUID v4 needs nothing more.
package idgen

import (
	"crypto/rand"
	"fmt"
)

// NewID returns a random UUID-v4-formatted string, used as the
// identifier for DetectionReview documents.
func NewID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("idgen: crypto/rand unavailable: %v", err))
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}

// NewJobID returns a short random hex token for a profile-reload job run.
func NewJobID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("idgen: crypto/rand unavailable: %v", err))
	}
	return fmt.Sprintf("%x", b)
}
