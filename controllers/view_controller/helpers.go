package view_controller

import (
	"errors"
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// loadView resolves :id, writing the error response itself when it fails.
func loadView(c *gin.Context) (*services.View, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid view ID"))
		return nil, false
	}

	view, err := services.GetBrowserService().Views.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "View not found"))
		return nil, false
	}
	return view, true
}

// respondSnapshot writes the view state. A failed load is still a 200 with
// the error flag set, so clients can render the failure instead of guessing.
func respondSnapshot(c *gin.Context, status int, message string, snap models.ViewSnapshot) {
	if snap.State == models.LoadStateFailed {
		c.JSON(status, models.ErrorWithData(c, "Entitlements could not be loaded", snap.Summary()))
		return
	}
	c.JSON(status, models.SuccessResponse(c, message, snap.Summary()))
}

func respondUpdateError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrViewClosed) {
		c.JSON(http.StatusGone, models.ErrorResponse(c, "View is closed"))
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
}
