package responses

import "github.com/caiatext/langident/app/models"

// ErrorResponse is the uniform error shape across every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DetectResponse wraps a single detection result with timing metadata.
type DetectResponse struct {
	Result           models.DetectionResult `json:"result"`
	ProcessingTimeMs int64                   `json:"processing_time_ms"`
}

// BatchDetectResponse carries one result per request item, in order.
type BatchDetectResponse struct {
	Results          []models.DetectionResult `json:"results"`
	ProcessingTimeMs int64                     `json:"processing_time_ms"`
}

// LoadedLanguagesResponse reports which languages the active profile
// index can classify, and which profile set it was built from.
type LoadedLanguagesResponse struct {
	Languages      []string `json:"languages"`
	ProfileVersion string   `json:"profile_version"`
}

// ReviewListResponse lists pending human-review items.
type ReviewListResponse struct {
	Items []models.DetectionReview `json:"items"`
}

// ReviewSearchResponse returns review IDs matching a free-text query.
type ReviewSearchResponse struct {
	IDs []string `json:"ids"`
}

// StatsResponse surfaces cache hit-rate telemetry for the admin panel.
type StatsResponse struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// SuccessResponse is a generic envelope for admin actions with no
// dedicated response shape.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
