package entitlement_controller

import (
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/config"
	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetEntitlements godoc
// @Summary List published entitlements
// @Description Loads the sheet and returns the published entitlements matching the search text and facet selections. Values within a facet are ORed, facets are ANDed.
// @Tags Entitlements
// @Produce json
// @Param q query string false "Search text (name, headline or description)"
// @Param AgeGroup query []string false "Age bands (repeatable)"
// @Param Category query []string false "Categories (repeatable)"
// @Param State query []string false "States (repeatable)"
// @Param LifeEvent query []string false "Life events (repeatable)"
// @Param PaymentType query []string false "Payment types (repeatable)"
// @Param RelationshipStatus query []string false "Relationship statuses (repeatable)"
// @Param HomeOwnership query []string false "Home ownership (repeatable)"
// @Param CardType query []string false "Card types (repeatable)"
// @Success 200 {object} models.ApiResponse "Entitlements fetched successfully"
// @Failure 502 {object} models.ApiResponse "Entitlement sheet unavailable"
// @Router /entitlements [get]
func GetEntitlements(c *gin.Context) {
	state := ParseFilterQuery(c)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result, err := services.GetBrowserService().Query(ctx, state)
	if err != nil {
		log.Error().Err(err).Msg("[entitlements.list] load failed")
		RespondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(
		c,
		"Entitlements fetched successfully",
		result.Visible,
		&models.ResultMeta{
			Total:   len(result.Records),
			Visible: len(result.Visible),
			Skipped: result.Skipped,
		},
	))
}
