package view_controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// maxMountWait caps ?wait= so a slow sheet cannot hold a request forever.
const maxMountWait = 10 * time.Second

// CreateView godoc
// @Summary Mount a browser view
// @Description Creates a view and starts its single dataset fetch. With wait=<seconds> the response is delayed until the fetch completes (up to 10s); otherwise the view is returned in the loading state.
// @Tags Views
// @Produce json
// @Param wait query int false "Seconds to wait for the dataset"
// @Success 201 {object} models.ApiResponse{data=models.ViewSummary}
// @Router /views [post]
func CreateView(c *gin.Context) {
	view := services.GetBrowserService().Views.Create()

	if seconds, err := strconv.Atoi(c.Query("wait")); err == nil && seconds > 0 {
		wait := time.Duration(seconds) * time.Second
		if wait > maxMountWait {
			wait = maxMountWait
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), wait)
		defer cancel()
		if err := view.Wait(ctx); err != nil {
			log.Debug().Str("view", view.ID().String()).Msg("[view.create] returning before load finished")
		}
	}

	c.Header("Location", "/api/v1/views/"+view.ID().String())
	respondSnapshot(c, http.StatusCreated, "View created", view.Snapshot())
}
