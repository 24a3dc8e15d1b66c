package entitlement_controller

import (
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RefreshDataset godoc
// @Summary Drop the cached sheet
// @Description Invalidates the dataset cache so the next load reads the sheet again. Views already mounted keep their data.
// @Tags Entitlements
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /entitlements/refresh [post]
func RefreshDataset(c *gin.Context) {
	services.GetBrowserService().Refresh(c.Request.Context())
	log.Info().Msg("[entitlements.refresh] dataset cache invalidated")
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Dataset cache cleared", nil))
}
