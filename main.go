// @title EntitleMate API
// @version 1.0
// @description Browse published entitlements by search text and facets
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brendanxryan/entitlemate-backend/config"
	"github.com/brendanxryan/entitlemate-backend/middleware"
	"github.com/brendanxryan/entitlemate-backend/routes/api_routes"
	"github.com/brendanxryan/entitlemate-backend/routes/page_routes"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	config.InitLogger(config.Env())
	cfg := config.Load()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis connection (optional)
	if err := config.ConnectRedis(cfg.RedisURL); err != nil {
		log.Fatal().Err(err).Msg("❌ Redis setup failed")
	}
	defer config.CloseRedis()

	// Browser service: source → cache → loader → views
	browser := services.NewBrowserService(ctx, cfg, config.RedisClient)
	services.InitBrowserService(browser)
	browser.StartJanitor(ctx, time.Minute)
	defer browser.Shutdown()

	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length", "Location", "X-Request-ID"},
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsCfg))

	limiter := middleware.RateLimiter(config.RedisClient, cfg.RateLimit, cfg.RateWindow)

	// Server-rendered browser
	page_routes.SetupPageRoutes(router, limiter)

	// Register API routes
	api := router.Group("/api/v1")

	api_routes.SetupEntitlementRoutes(api, middleware.RateLimiter(config.RedisClient, 5, cfg.RateWindow))

	views := api.Group("")
	views.Use(limiter)
	api_routes.SetupViewRoutes(views)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("🚀 Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := config.WithCustomTimeout(10 * time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
