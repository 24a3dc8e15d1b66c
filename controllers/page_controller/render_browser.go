package page_controller

import (
	"html/template"
	"net/http"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/gin-gonic/gin"
)

// RenderBrowser godoc
// @Summary Entitlement browser page
// @Description Server-rendered search box, facet toggle groups and card grid for the browser's view
// @Tags Page
// @Produce html
// @Param theme query string false "classic | compact"
// @Success 200 "HTML page"
// @Router / [get]
func RenderBrowser(c *gin.Context) {
	view := currentView(c)
	theme := themeFor(c)
	snap := view.Snapshot()

	c.HTML(http.StatusOK, "browser.tmpl", pageData{
		Theme:       theme,
		Stylesheet:  template.CSS(theme.Stylesheet),
		Placeholder: Placeholder,
		Loading:     snap.State == models.LoadStateLoading,
		Snapshot:    snap,
	})
}
