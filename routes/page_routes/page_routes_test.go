package page_routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/brendanxryan/entitlemate-backend/controllers/page_controller"
	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-gonic/gin"
)

type rowsSource struct {
	rows []models.RawRow
	err  error
}

func (s rowsSource) Fetch(ctx context.Context) ([]models.RawRow, error) {
	return s.rows, s.err
}

func setupPage(t *testing.T, source services.Source) *gin.Engine {
	t.Helper()
	return setupPageWith(t, source, 0, func(c *gin.Context) { c.Next() })
}

func setupPageWith(t *testing.T, source services.Source, maxViews int, limiter gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	loader := services.NewLoader(source)
	svc := &services.BrowserService{
		Loader: loader,
		Views:  services.NewViewRegistry(ctx, loader, time.Minute).WithMaxViews(maxViews),
		Theme:  models.ThemeClassic,
	}
	services.InitBrowserService(svc)
	t.Cleanup(func() {
		svc.Shutdown()
		cancel()
	})

	router := gin.New()
	SetupPageRoutes(router, limiter)
	return router
}

func get(router *gin.Engine, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func post(router *gin.Engine, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func viewCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == page_controller.ViewCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", page_controller.ViewCookie)
	return nil
}

func TestBrowserPage(t *testing.T) {
	router := setupPage(t, rowsSource{rows: []models.RawRow{
		{"Name": "Pension Boost", "Status": "Published", "Headline": "Top up your pension", "Category": "Retirement, Tax", "60-65": "true", "ValueEstimate": "$1,250.50", "GovLink": "https://www.servicesaustralia.gov.au/"},
		{"Name": "Energy Rebate", "Status": "Published", "ValueEstimate": "250.00"},
		{"Name": "Rent Rebate", "Status": "Draft", "Category": "Housing"},
	}})

	w := get(router, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"Pension Boost",
		"Top up your pension",
		"Estimated value:",
		"Estimated value:</strong> $1,250.50</p>",
		"Estimated value:</strong> $250</p>",
		`target="_blank"`,
		"Gov Link",
		`value="Retirement"`,
		`value="60-65"`,
		"Search entitlements",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "Rent Rebate") || strings.Contains(body, `value="Housing"`) {
		t.Errorf("draft entitlement leaked into the page")
	}
	cookie := viewCookie(t, w)

	w = post(router, "/toggle", url.Values{"facet": {"AgeGroup"}, "value": {"65-67"}}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("toggle status = %d, want 303", w.Code)
	}
	if body := get(router, "/", cookie).Body.String(); strings.Contains(body, "<h2>Pension Boost</h2>") {
		t.Errorf("65-67 should hide Pension Boost")
	}

	post(router, "/toggle", url.Values{"facet": {"AgeGroup"}, "value": {"65-67"}}, cookie)
	if body := get(router, "/", cookie).Body.String(); !strings.Contains(body, "<h2>Pension Boost</h2>") {
		t.Errorf("toggling 65-67 off should restore the card")
	}

	post(router, "/search", url.Values{"q": {"rent"}}, cookie)
	body = get(router, "/", cookie).Body.String()
	if strings.Contains(body, "<h2>") {
		t.Errorf("search rent should show no cards")
	}
	if !strings.Contains(body, `value="rent"`) {
		t.Errorf("search box should keep its text")
	}
}

func TestBrowserPageLoadError(t *testing.T) {
	router := setupPage(t, rowsSource{err: services.ErrSourceUnavailable})

	body := get(router, "/").Body.String()
	if !strings.Contains(body, "could not be loaded") {
		t.Errorf("page should show the load failure")
	}
	if !strings.Contains(body, `class="load-error"`) {
		t.Errorf("load failure should use the theme's error class")
	}
}

func TestBrowserPageTheme(t *testing.T) {
	router := setupPage(t, rowsSource{})

	body := get(router, "/?theme=compact").Body.String()
	if !strings.Contains(body, `value="compact"`) {
		t.Errorf("theme not carried into the forms")
	}

	w := post(router, "/search", url.Values{"q": {"x"}, "theme": {"compact"}})
	if loc := w.Header().Get("Location"); loc != "/?theme=compact" {
		t.Errorf("redirect = %q", loc)
	}
}

func TestSubmitToggleRejectsUnknownFacet(t *testing.T) {
	router := setupPage(t, rowsSource{})
	w := post(router, "/toggle", url.Values{"facet": {"Colour"}, "value": {"Red"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestResetMountsFreshView(t *testing.T) {
	router := setupPage(t, rowsSource{rows: []models.RawRow{{"Name": "Pension Boost", "Status": "Published"}}})

	first := viewCookie(t, get(router, "/"))
	post(router, "/search", url.Values{"q": {"zzz"}}, first)

	w := post(router, "/reset", nil, first)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("reset status = %d", w.Code)
	}

	w = get(router, "/", first)
	second := viewCookie(t, w)
	if second.Value == first.Value {
		t.Errorf("closed view was reused")
	}
	if !strings.Contains(w.Body.String(), "<h2>Pension Boost</h2>") {
		t.Errorf("fresh view should have cleared filters")
	}
}

func TestHealth(t *testing.T) {
	router := setupPage(t, rowsSource{})
	if w := get(router, "/health"); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCookielessVisitsAreBounded(t *testing.T) {
	router := setupPageWith(t, rowsSource{rows: []models.RawRow{{"Name": "Pension Boost", "Status": "Published"}}}, 5, func(c *gin.Context) { c.Next() })

	for i := 0; i < 50; i++ {
		if w := get(router, "/"); w.Code != http.StatusOK {
			t.Fatalf("visit %d: status %d", i, w.Code)
		}
	}
	if n := services.GetBrowserService().Views.Len(); n != 5 {
		t.Errorf("live views after 50 cookie-less visits = %d, want 5", n)
	}
}

func TestPageRoutesUseLimiter(t *testing.T) {
	blocked := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	router := setupPageWith(t, rowsSource{}, 0, blocked)

	for _, w := range []*httptest.ResponseRecorder{
		get(router, "/"),
		post(router, "/search", url.Values{"q": {"x"}}),
		post(router, "/toggle", url.Values{"facet": {"Category"}, "value": {"Tax"}}),
		post(router, "/reset", nil),
	} {
		if w.Code != http.StatusTooManyRequests {
			t.Errorf("status = %d, want 429", w.Code)
		}
	}
	if n := services.GetBrowserService().Views.Len(); n != 0 {
		t.Errorf("limited requests mounted %d views", n)
	}
	if w := get(router, "/health"); w.Code != http.StatusOK {
		t.Errorf("health should not be limited, got %d", w.Code)
	}
}
