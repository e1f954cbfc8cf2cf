// Package controllers holds the gin HTTP handlers. Each controller is a
// thin adapter: bind the request, call one service method, shape the
// response. No detection logic lives here.
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/caiatext/langident/app/models"
	"github.com/caiatext/langident/app/requests"
	"github.com/caiatext/langident/app/responses"
	"github.com/caiatext/langident/app/services/detectsvc"
	"github.com/caiatext/langident/internal/detect"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DetectController exposes single and batch language classification.
type DetectController struct {
	service *detectsvc.Service
	logger  *zap.Logger
}

func NewDetectController(service *detectsvc.Service, logger *zap.Logger) *DetectController {
	return &DetectController{service: service, logger: logger}
}

// Detect classifies a single text.
func (dc *DetectController) Detect(c *gin.Context) {
	var req requests.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	start := time.Now()
	result, err := dc.service.Detect(c.Request.Context(), detectsvc.Request{Text: req.Text, SourceTag: req.SourceTag})
	if err != nil {
		writeDetectError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.DetectResponse{
		Result:           *result,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// BatchDetect classifies a list of texts, returning one result per item
// in the same order. A single item's failure does not abort the batch;
// it is surfaced as an "unknown" result so the caller gets a
// same-length response.
func (dc *DetectController) BatchDetect(c *gin.Context) {
	var req requests.BatchDetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	start := time.Now()
	results := make([]models.DetectionResult, len(req.Items))
	for i, item := range req.Items {
		result, err := dc.service.Detect(c.Request.Context(), detectsvc.Request{Text: item.Text, SourceTag: item.SourceTag})
		if err != nil {
			dc.logger.Warn("batch item failed", zap.Int("index", i), zap.Error(err))
			results[i] = models.DetectionResult{Lang: detect.UnknownLanguage}
			continue
		}
		results[i] = *result
	}

	c.JSON(http.StatusOK, responses.BatchDetectResponse{
		Results:          results,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// LoadedLanguages reports the language set the active profile index can
// classify.
func (dc *DetectController) LoadedLanguages(c *gin.Context) {
	langs, version := dc.service.LoadedLanguages()
	c.JSON(http.StatusOK, responses.LoadedLanguagesResponse{
		Languages:      langs,
		ProfileVersion: version,
	})
}

// Stats surfaces detection cache telemetry.
func (dc *DetectController) Stats(c *gin.Context) {
	stats, err := dc.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "STATS_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, responses.StatsResponse{
		HitRate:    stats.HitRate,
		TotalHits:  stats.TotalHits,
		TotalMiss:  stats.TotalMiss,
		TotalItems: stats.TotalItems,
	})
}

func writeDetectError(c *gin.Context, logger *zap.Logger, err error) {
	var cantDetect *detect.CantDetectError
	var initParam *detect.InitParamError
	switch {
	case errors.As(err, &cantDetect):
		c.JSON(http.StatusUnprocessableEntity, responses.ErrorResponse{
			Error:   "CANT_DETECT",
			Message: err.Error(),
		})
	case errors.As(err, &initParam):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INIT_PARAM",
			Message: err.Error(),
		})
	default:
		logger.Error("detect failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "DETECT_ERROR",
			Message: err.Error(),
		})
	}
}
