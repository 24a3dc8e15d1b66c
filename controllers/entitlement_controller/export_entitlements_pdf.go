package entitlement_controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brendanxryan/entitlemate-backend/config"
	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ExportEntitlementsPDF godoc
// @Summary Download matching entitlements as PDF
// @Description Applies the same search and facet parameters as GET /entitlements and renders the matching cards into a PDF
// @Tags Entitlements
// @Produce octet-stream
// @Param q query string false "Search text"
// @Success 200 "PDF file"
// @Failure 502 {object} models.ApiResponse "Entitlement sheet unavailable"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /entitlements/export.pdf [get]
func ExportEntitlementsPDF(c *gin.Context) {
	state := ParseFilterQuery(c)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result, err := services.GetBrowserService().Query(ctx, state)
	if err != nil {
		log.Error().Err(err).Msg("[entitlements.export] load failed")
		RespondLoadError(c, err)
		return
	}

	now := time.Now()
	pdfBuffer, err := services.RenderEntitlementsPDF(result.Visible, state, now)
	if err != nil {
		log.Error().Err(err).Msg("[entitlements.export] failed to generate PDF")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	// Set response headers for file download
	filename := fmt.Sprintf("entitlements-%s.pdf", now.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())

	log.Info().Int("visible", len(result.Visible)).Msg("[entitlements.export] PDF downloaded")
}
