package view_controller

import (
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/gin-gonic/gin"
)

// UpdateViewSearch godoc
// @Summary Set the search text
// @Tags Views
// @Accept json
// @Produce json
// @Param id path string true "View ID"
// @Param body body models.SearchRequest true "Search text"
// @Success 200 {object} models.ApiResponse{data=models.ViewSummary}
// @Failure 400 {object} models.ApiResponse "Invalid body"
// @Failure 404 {object} models.ApiResponse "View not found"
// @Router /views/{id}/search [patch]
func UpdateViewSearch(c *gin.Context) {
	view, ok := loadView(c)
	if !ok {
		return
	}

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	snap, err := view.SetSearch(req.Search)
	if err != nil {
		respondUpdateError(c, err)
		return
	}
	respondSnapshot(c, http.StatusOK, "Search updated", snap)
}
