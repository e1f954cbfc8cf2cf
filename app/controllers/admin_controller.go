package controllers

import (
	"net/http"
	"strconv"

	"github.com/caiatext/langident/app/requests"
	"github.com/caiatext/langident/app/responses"
	"github.com/caiatext/langident/app/services/priors"
	"github.com/caiatext/langident/app/services/review"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController exposes the human-review backlog and learned-prior
// overrides to operators.
type AdminController struct {
	review *review.Service
	priors *priors.Service
	logger *zap.Logger
}

func NewAdminController(review *review.Service, priors *priors.Service, logger *zap.Logger) *AdminController {
	return &AdminController{review: review, priors: priors, logger: logger}
}

// PendingReviews lists low-confidence results awaiting a human decision.
func (ac *AdminController) PendingReviews(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	items, err := ac.review.Pending(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "REVIEW_QUERY_ERROR", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, responses.ReviewListResponse{Items: items})
}

// SearchReviews full-text searches the pending backlog.
func (ac *AdminController) SearchReviews(c *gin.Context) {
	query := c.Query("q")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	ids, err := ac.review.Search(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "REVIEW_SEARCH_ERROR", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, responses.ReviewSearchResponse{IDs: ids})
}

// ApproveReview confirms the auto-detected language was correct.
func (ac *AdminController) ApproveReview(c *gin.Context) {
	id := c.Param("id")
	var req requests.ApproveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}
	if err := ac.review.Approve(c.Request.Context(), id, req.ReviewerID); err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "REVIEW_NOT_FOUND", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: "review approved"})
}

// CorrectReview overrides the auto-detected language on the review item.
// It does not record a prior override; the review item carries no source
// tag to attach one to.
func (ac *AdminController) CorrectReview(c *gin.Context) {
	id := c.Param("id")
	var req requests.CorrectReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}
	if err := ac.review.Correct(c.Request.Context(), id, req.ReviewerID, req.Lang); err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "REVIEW_NOT_FOUND", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: "review corrected"})
}

// SetPrior manually sets a source tag's learned confidence in a
// language, used by an operator correcting a bad auto-learned bias.
func (ac *AdminController) SetPrior(c *gin.Context) {
	var req requests.SetPriorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}
	if err := ac.priors.SetConfidence(c.Request.Context(), req.SourceTag, req.Lang, req.Confidence); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "PRIOR_ERROR", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: "prior updated"})
}
