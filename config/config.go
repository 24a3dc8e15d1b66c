package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSheetURL is the published EntitleMate sheet.
const DefaultSheetURL = "https://api.sheetbest.com/sheets/6b9a06de-35b8-4983-865d-54518ebdf66a"

// AppConfig holds everything the server and CLI read from the environment.
type AppConfig struct {
	Env          string
	Port         string
	SheetURL     string
	SheetFile    string
	SheetName    string
	RedisURL     string
	Theme        string
	CORSOrigins  []string
	FetchTimeout time.Duration
	DatasetTTL   time.Duration
	ViewTTL      time.Duration
	MaxViews     int
	RateLimit    int
	RateWindow   time.Duration
}

// Load reads AppConfig from the environment, falling back to local defaults.
func Load() *AppConfig {
	cfg := &AppConfig{
		Env:          Env(),
		Port:         getEnv("PORT", "8081"),
		SheetURL:     getEnv("SHEET_URL", DefaultSheetURL),
		SheetFile:    os.Getenv("SHEET_FILE"),
		SheetName:    os.Getenv("SHEET_NAME"),
		RedisURL:     os.Getenv("REDIS_URL"),
		Theme:        getEnv("UI_THEME", "classic"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		DatasetTTL:   getEnvDuration("DATASET_TTL", 5*time.Minute),
		ViewTTL:      getEnvDuration("VIEW_TTL", 30*time.Minute),
		MaxViews:     getEnvInt("MAX_VIEWS", 1000),
		RateLimit:    getEnvInt("RATE_LIMIT", 100),
		RateWindow:   getEnvDuration("RATE_WINDOW", time.Minute),
	}

	if cfg.SheetFile != "" {
		log.Info().Str("file", cfg.SheetFile).Msg("SHEET_FILE set, reading entitlements from workbook")
	} else if os.Getenv("SHEET_URL") == "" {
		log.Warn().Str("url", cfg.SheetURL).Msg("⚠️ SHEET_URL not set, using published sheet")
	}

	return cfg
}

// Env returns APP_ENV, defaulting to development. It is read before Load so
// the logger is configured before anything logs.
func Env() string {
	return getEnv("APP_ENV", "development")
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer, using default")
		return defaultValue
	}
	return i
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid duration, using default")
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
