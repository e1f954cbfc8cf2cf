// Package routes wires gin route groups to their controllers.
package routes

import (
	"net/http"

	"github.com/caiatext/langident/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupAllRoutes registers every route group and the standard
// middleware on router.
func SetupAllRoutes(router *gin.Engine, detectController *controllers.DetectController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupHealthRoutes(router)
	SetupAPIRoutes(router, detectController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}

// SetupHealthRoutes registers liveness/readiness probes.
func SetupHealthRoutes(router *gin.Engine) {
	healthy := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "healthy"}) }
	router.GET("/health", healthy)
	router.GET("/ready", healthy)
	router.GET("/live", healthy)
}
