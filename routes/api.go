package routes

import (
	"github.com/caiatext/langident/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes registers the /v1 detection and admin route groups.
func SetupAPIRoutes(router *gin.Engine, detectController *controllers.DetectController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		v1.POST("/detect", detectController.Detect)
		v1.POST("/detect/batch", detectController.BatchDetect)
		v1.GET("/languages", detectController.LoadedLanguages)
		v1.GET("/stats", detectController.Stats)

		admin := v1.Group("/admin")
		{
			admin.GET("/reviews", adminController.PendingReviews)
			admin.GET("/reviews/search", adminController.SearchReviews)
			admin.POST("/reviews/:id/approve", adminController.ApproveReview)
			admin.POST("/reviews/:id/correct", adminController.CorrectReview)
			admin.POST("/priors", adminController.SetPrior)
		}
	}
}
