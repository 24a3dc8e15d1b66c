package view_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetView godoc
// @Summary Get a view
// @Description Returns the view's load state, facet options, filters and visible entitlements
// @Tags Views
// @Produce json
// @Param id path string true "View ID"
// @Success 200 {object} models.ApiResponse{data=models.ViewSummary}
// @Failure 404 {object} models.ApiResponse "View not found"
// @Router /views/{id} [get]
func GetView(c *gin.Context) {
	view, ok := loadView(c)
	if !ok {
		return
	}
	respondSnapshot(c, http.StatusOK, "View fetched", view.Snapshot())
}
