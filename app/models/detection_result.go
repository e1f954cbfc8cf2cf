package models

// Candidate is one ranked language guess returned from a detection run.
type Candidate struct {
	Lang string  `bson:"lang" json:"lang"`
	Prob float64 `bson:"prob" json:"prob"`
}

// DetectionResult is the outward-facing shape of a single detection
// call: the ranked candidates, the top pick with its confidence gap over
// the runner-up, and the profile set version that produced it.
type DetectionResult struct {
	Lang           string      `bson:"lang" json:"lang"`
	Confidence     float64     `bson:"confidence" json:"confidence"`
	ConfidenceGap  float64     `bson:"confidence_gap" json:"confidence_gap"`
	Candidates     []Candidate `bson:"candidates" json:"candidates"`
	ProfileVersion string      `bson:"profile_version" json:"profile_version"`
}

// NeedsReview reports whether the gap between the top two candidates is
// too small to trust without a human look.
func (r *DetectionResult) NeedsReview(gapThreshold float64) bool {
	if len(r.Candidates) < 2 {
		return false
	}
	return r.ConfidenceGap < gapThreshold
}
