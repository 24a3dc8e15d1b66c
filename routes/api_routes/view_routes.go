package api_routes

import (
	"github.com/brendanxryan/entitlemate-backend/controllers/view_controller"
	"github.com/gin-gonic/gin"
)

// SetupViewRoutes registers the stateful browser view endpoints.
func SetupViewRoutes(router *gin.RouterGroup) {
	views := router.Group("/views")
	{
		views.POST("", view_controller.CreateView)
		views.GET("/:id", view_controller.GetView)
		views.PATCH("/:id/search", view_controller.UpdateViewSearch)
		views.POST("/:id/toggle", view_controller.ToggleViewFacet)
		views.DELETE("/:id", view_controller.CloseView)
	}
}
