package api_routes

import (
	"github.com/brendanxryan/entitlemate-backend/controllers/entitlement_controller"
	"github.com/gin-gonic/gin"
)

func SetupEntitlementRoutes(router *gin.RouterGroup, refreshLimiter gin.HandlerFunc) {
	// Entitlement routes (public, stateless)
	entitlements := router.Group("/entitlements")
	{
		entitlements.GET("", entitlement_controller.GetEntitlements)                  // List with filters
		entitlements.GET("/facets", entitlement_controller.GetFacetOptions)           // Facet option sets
		entitlements.GET("/export.pdf", entitlement_controller.ExportEntitlementsPDF) // PDF of matching cards

		entitlements.POST("/refresh", refreshLimiter, entitlement_controller.RefreshDataset)
	}
}
