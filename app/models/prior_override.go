package models

import "time"

const (
	PriorSourceManual      = "manual"
	PriorSourceAutoLearned = "auto_learned"
)

// PriorOverride is a learned bias toward a language for text arriving
// tagged with a particular source (a domain known to run mostly one
// language, a tenant's declared locale). It seeds a Detector's starting
// probability vector instead of the uniform 1/N default.
type PriorOverride struct {
	SourceTag  string    `bson:"source_tag" json:"source_tag"`
	Lang       string    `bson:"lang" json:"lang"`
	Confidence float64   `bson:"confidence" json:"confidence"`
	Source     string    `bson:"source" json:"source"`
	UsageCount int       `bson:"usage_count" json:"usage_count"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	LastUsed   time.Time `bson:"last_used" json:"last_used"`
}

// NewPriorOverride creates a manually or automatically learned prior.
func NewPriorOverride(sourceTag, lang, source string) *PriorOverride {
	now := time.Now()
	return &PriorOverride{
		SourceTag:  sourceTag,
		Lang:       lang,
		Confidence: 0.8,
		Source:     source,
		UsageCount: 1,
		CreatedAt:  now,
		LastUsed:   now,
	}
}

// RecordUsage bumps the usage counter and the last-used time in memory.
// Stored overrides are counted by priors.Service.Record instead.
func (p *PriorOverride) RecordUsage() {
	p.UsageCount++
	p.LastUsed = time.Now()
}
