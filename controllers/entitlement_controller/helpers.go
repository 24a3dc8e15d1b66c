package entitlement_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
)

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// ParseFilterQuery reads the search text (q) and one repeatable query
// parameter per facet, named after the facet (Category, AgeGroup, ...).
// Comma-separated values are split, since sheet tokens never contain commas.
func ParseFilterQuery(c *gin.Context) models.FilterState {
	search := c.Query("q")
	if search == "" {
		search = c.Query("search")
	}

	selected := make(map[models.Facet][]string)
	for key, values := range c.Request.URL.Query() {
		f, ok := models.ParseFacet(key)
		if !ok {
			continue
		}
		for _, raw := range values {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					selected[f] = append(selected[f], v)
				}
			}
		}
	}

	return models.NewFilterState(search, selected)
}

// RespondLoadError writes the classified load failure as a 502.
func RespondLoadError(c *gin.Context, err error) {
	var le *services.LoadError
	if errors.As(err, &le) {
		c.JSON(http.StatusBadGateway, models.ErrorWithData(c, "Failed to load entitlements", le.Failure()))
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load entitlements"))
}
