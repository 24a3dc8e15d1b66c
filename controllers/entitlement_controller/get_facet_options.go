package entitlement_controller

import (
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/config"
	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetFacetOptions godoc
// @Summary Get facet options
// @Description Returns, for every facet, the distinct values present in the published entitlements with a record count. The age group lists the fixed bands.
// @Tags Entitlements
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FacetOptions}
// @Failure 502 {object} models.ApiResponse
// @Router /entitlements/facets [get]
func GetFacetOptions(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	result, err := services.GetBrowserService().Query(ctx, models.FilterState{})
	if err != nil {
		log.Error().Err(err).Msg("[entitlements.facets] load failed")
		RespondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Facet options fetched", result.Options))
}
