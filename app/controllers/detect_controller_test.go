package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caiatext/langident/app/responses"
	"github.com/caiatext/langident/app/services/detectsvc"
	"github.com/caiatext/langident/internal/profile"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profiles := []profile.LanguageProfile{
		{Name: "en", Freq: map[string]int64{"t": 100, "h": 90, "e": 120, "th": 80, "he": 70, "the": 60}, NWords: [3]int64{400, 250, 120}},
		{Name: "fr", Freq: map[string]int64{"l": 100, "e": 90, "le": 70, "de": 60}, NWords: [3]int64{300, 200, 80}},
	}
	idx, err := profile.Build(profiles)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	service := detectsvc.New(idx, "test-version", detectsvc.Options{
		Logger:        zap.NewNop(),
		ReviewGap:     0.2,
		MaxTextLength: 10000,
	})

	controller := NewDetectController(service, zap.NewNop())
	router := gin.New()
	router.POST("/v1/detect", controller.Detect)
	router.POST("/v1/detect/batch", controller.BatchDetect)
	router.GET("/v1/languages", controller.LoadedLanguages)
	return router
}

func TestDetectEndpointReturnsResult(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"text": "the the the the"})
	req := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp responses.DetectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Lang != "en" {
		t.Errorf("Lang = %q, want en", resp.Result.Lang)
	}
}

func TestDetectEndpointRejectsMissingText(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBatchDetectEndpointReturnsSameLengthResults(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"items": []map[string]string{
			{"text": "the the the"},
			{"text": "le le le de"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/detect/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp responses.BatchDetectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("got %d results, want 2", len(resp.Results))
	}
}

func TestLoadedLanguagesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/languages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp responses.LoadedLanguagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Languages) != 2 {
		t.Errorf("got %d languages, want 2", len(resp.Languages))
	}
	if resp.ProfileVersion != "test-version" {
		t.Errorf("ProfileVersion = %q, want test-version", resp.ProfileVersion)
	}
}
