package view_controller

import (
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ToggleViewFacet godoc
// @Summary Toggle a facet value
// @Description Selects the value if it is not selected, deselects it otherwise. Other facets are untouched.
// @Tags Views
// @Accept json
// @Produce json
// @Param id path string true "View ID"
// @Param body body models.ToggleRequest true "Facet and value"
// @Success 200 {object} models.ApiResponse{data=models.ViewSummary}
// @Failure 400 {object} models.ApiResponse "Invalid facet"
// @Failure 404 {object} models.ApiResponse "View not found"
// @Router /views/{id}/toggle [post]
func ToggleViewFacet(c *gin.Context) {
	view, ok := loadView(c)
	if !ok {
		return
	}

	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	facet, ok := models.ParseFacet(req.Facet)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid facet"))
		return
	}

	snap, err := view.Toggle(facet, req.Value)
	if err != nil {
		respondUpdateError(c, err)
		return
	}

	log.Debug().
		Str("view", snap.ID.String()).
		Str("facet", string(facet)).
		Str("value", req.Value).
		Int("visible", len(snap.Visible)).
		Msg("[view.toggle] facet toggled")

	respondSnapshot(c, http.StatusOK, "Filter updated", snap)
}
