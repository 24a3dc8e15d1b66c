package page_controller

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ViewCookie = "entitlemate_view"

	// Placeholder is the search box hint.
	Placeholder = "Search entitlements, strategies, or age bands (e.g. 67-75)..."

	firstLoadWait = 5 * time.Second
)

type pageData struct {
	Theme       models.Theme
	Stylesheet  template.CSS
	Placeholder string
	Loading     bool
	Snapshot    models.ViewSnapshot
}

// currentView returns the view bound to the browser's cookie, mounting a new
// one when there is none or it has expired.
func currentView(c *gin.Context) *services.View {
	registry := services.GetBrowserService().Views

	if raw, err := c.Cookie(ViewCookie); err == nil {
		if id, err := uuid.Parse(raw); err == nil {
			if view, err := registry.Get(id); err == nil {
				return view
			}
		}
	}

	view := registry.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ViewCookie, view.ID().String(), 0, "/", "", false, true)
	log.Debug().Str("view", view.ID().String()).Msg("[page.view] mounted view for browser")

	// The first render waits briefly so the page is not empty on arrival.
	ctx, cancel := context.WithTimeout(c.Request.Context(), firstLoadWait)
	defer cancel()
	_ = view.Wait(ctx)

	return view
}

func themeFor(c *gin.Context) models.Theme {
	name := c.Query("theme")
	if name == "" {
		name = c.PostForm("theme")
	}
	if name == "" {
		return services.GetBrowserService().Theme
	}
	return models.ThemeByName(name)
}

func redirectHome(c *gin.Context) {
	target := "/"
	if theme := c.PostForm("theme"); theme != "" {
		target += "?theme=" + url.QueryEscape(theme)
	}
	c.Redirect(http.StatusSeeOther, target)
}
