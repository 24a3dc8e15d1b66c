package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func limitedRouter(t *testing.T, client *redis.Client, max int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/entitlements", RateLimiter(client, max, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
	})
	return router
}

func call(router *gin.Engine, ip string) (*httptest.ResponseRecorder, models.ApiResponse) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entitlements", nil)
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.ApiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	router := limitedRouter(t, client, 2)

	for i, wantRemaining := range []int{1, 0} {
		w, resp := call(router, "203.0.113.7")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, w.Code)
		}
		if resp.Rate == nil || resp.Rate.Limit != 2 || resp.Rate.Remaining != wantRemaining {
			t.Errorf("request %d: rate = %+v", i+1, resp.Rate)
		}
	}

	w, resp := call(router, "203.0.113.7")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if !resp.Error || resp.Message != "Too many requests" {
		t.Errorf("unexpected envelope %+v", resp)
	}
	if resp.Rate == nil || resp.Rate.Remaining != 0 || resp.Rate.ResetInSeconds > 60 {
		t.Errorf("rate = %+v", resp.Rate)
	}

	key := "rl:203.0.113.7:GET:/api/v1/entitlements"
	if got, err := mr.Get(key); err != nil || got != "3" {
		t.Errorf("counter = %q (%v), want 3", got, err)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Errorf("counter TTL = %s, want 1m", ttl)
	}

	// Another caller has its own budget.
	if w, _ := call(router, "198.51.100.4"); w.Code != http.StatusOK {
		t.Errorf("other IP status = %d, want 200", w.Code)
	}

	// A new window starts once the counter expires.
	mr.FastForward(time.Minute + time.Second)
	if w, _ := call(router, "203.0.113.7"); w.Code != http.StatusOK {
		t.Errorf("after window status = %d, want 200", w.Code)
	}
}

func TestRateLimiterWithoutRedis(t *testing.T) {
	router := limitedRouter(t, nil, 1)
	for i := 0; i < 3; i++ {
		w, resp := call(router, "")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, w.Code)
		}
		if resp.Rate != nil {
			t.Errorf("no rate info expected without redis")
		}
	}
}

func TestRateLimiterRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	w, resp := call(limitedRouter(t, client, 5), "")
	if w.Code != http.StatusInternalServerError || !resp.Error {
		t.Errorf("status = %d, envelope = %+v", w.Code, resp)
	}
}
