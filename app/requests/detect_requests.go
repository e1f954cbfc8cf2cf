package requests

// DetectRequest is a single-text classification request.
type DetectRequest struct {
	Text      string `json:"text" binding:"required"`
	SourceTag string `json:"source_tag"`
}

// BatchDetectRequest classifies many texts in one call. Each item may
// carry its own source tag.
type BatchDetectRequest struct {
	Items []DetectRequest `json:"items" binding:"required,dive"`
}

// ApproveReviewRequest confirms a pending review's auto-detected
// language is correct.
type ApproveReviewRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
}

// CorrectReviewRequest overrides a pending review's language with the
// reviewer's chosen value. The prior-override store is not updated.
type CorrectReviewRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Lang       string `json:"lang" binding:"required"`
}

// SetPriorRequest manually sets a source tag's confidence in a given
// language, overriding whatever usage counting would otherwise learn.
type SetPriorRequest struct {
	SourceTag  string  `json:"source_tag" binding:"required"`
	Lang       string  `json:"lang" binding:"required"`
	Confidence float64 `json:"confidence"`
}
