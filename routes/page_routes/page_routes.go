package page_routes

import (
	"github.com/brendanxryan/entitlemate-backend/controllers/health_controller"
	"github.com/brendanxryan/entitlemate-backend/controllers/page_controller"
	"github.com/gin-gonic/gin"
)

// SetupPageRoutes registers the server-rendered browser and the health check.
// Every page route may mount a view, so they all sit behind limiter.
func SetupPageRoutes(router *gin.Engine, limiter gin.HandlerFunc) {
	router.SetHTMLTemplate(page_controller.Templates())

	pages := router.Group("", limiter)
	{
		pages.GET("/", page_controller.RenderBrowser)
		pages.POST("/search", page_controller.SubmitSearch)
		pages.POST("/toggle", page_controller.SubmitToggle)
		pages.POST("/reset", page_controller.ResetView)
	}

	router.GET("/health", health_controller.GetHealth)
}
