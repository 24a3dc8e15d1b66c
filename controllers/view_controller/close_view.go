package view_controller

import (
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CloseView godoc
// @Summary Close a view
// @Description Tears the view down; a fetch still in flight is cancelled and its result discarded
// @Tags Views
// @Produce json
// @Param id path string true "View ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "View not found"
// @Router /views/{id} [delete]
func CloseView(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid view ID"))
		return
	}

	if err := services.GetBrowserService().Views.Close(id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "View not found"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "View closed", nil))
}
