package page_controller

import (
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SubmitSearch handles the search form and redirects back to the page.
func SubmitSearch(c *gin.Context) {
	view := currentView(c)
	if _, err := view.SetSearch(c.PostForm("q")); err != nil {
		log.Warn().Err(err).Msg("[page.search] update failed")
	}
	redirectHome(c)
}

// SubmitToggle handles a facet button press and redirects back to the page.
func SubmitToggle(c *gin.Context) {
	facet, ok := models.ParseFacet(c.PostForm("facet"))
	value := c.PostForm("value")
	if !ok || value == "" {
		c.String(http.StatusBadRequest, "invalid facet")
		return
	}

	view := currentView(c)
	if _, err := view.Toggle(facet, value); err != nil {
		log.Warn().Err(err).Msg("[page.toggle] update failed")
	}
	redirectHome(c)
}

// ResetView closes the browser's view so the next page load mounts a fresh
// one with a new fetch and cleared filters.
func ResetView(c *gin.Context) {
	if raw, err := c.Cookie(ViewCookie); err == nil {
		if id, err := uuid.Parse(raw); err == nil {
			_ = services.GetBrowserService().Views.Close(id)
		}
	}
	c.SetCookie(ViewCookie, "", -1, "/", "", false, true)
	redirectHome(c)
}
