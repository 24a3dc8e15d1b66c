package health_controller

import (
	"net/http"
	"time"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// GetHealth godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /health [get]
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse(c, "healthy", gin.H{
		"uptime": time.Since(startTime).String(),
		"views":  services.GetBrowserService().Views.Len(),
	}))
}
