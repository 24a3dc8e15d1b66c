package services

import (
	"context"
	"time"

	dataset_cache "github.com/brendanxryan/entitlemate-backend/cache"
	"github.com/brendanxryan/entitlemate-backend/config"
	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// BrowserService ties the loader, dataset cache and view registry together
// for the HTTP handlers.
type BrowserService struct {
	Loader *Loader
	Views  *ViewRegistry
	Cache  *dataset_cache.Store
	Theme  models.Theme
}

// QueryResult is the outcome of a one-shot, stateless query.
type QueryResult struct {
	Records []models.Entitlement
	Options models.FacetOptions
	Visible []models.Entitlement
	Skipped int
}

var browserService *BrowserService

// NewBrowserService builds the source chain from config: workbook or sheet
// API, wrapped in the dataset cache.
func NewBrowserService(ctx context.Context, cfg *config.AppConfig, client *redis.Client) *BrowserService {
	var source Source
	if cfg.SheetFile != "" {
		source = NewWorkbookSource(cfg.SheetFile, cfg.SheetName)
	} else {
		source = NewSheetSource(cfg.SheetURL, cfg.FetchTimeout)
	}

	store := dataset_cache.New(client, cfg.DatasetTTL)
	loader := NewLoader(&CachedSource{Source: source, Cache: store})

	return &BrowserService{
		Loader: loader,
		Views:  NewViewRegistry(ctx, loader, cfg.ViewTTL).WithMaxViews(cfg.MaxViews),
		Cache:  store,
		Theme:  models.ThemeByName(cfg.Theme),
	}
}

// InitBrowserService installs the service used by the controllers.
func InitBrowserService(svc *BrowserService) {
	browserService = svc
	log.Info().Str("theme", svc.Theme.Name).Msg("✅ Browser service initialized")
}

// GetBrowserService returns the initialized service.
func GetBrowserService() *BrowserService {
	if browserService == nil {
		// Fallback to environment configuration if not initialized
		log.Warn().Msg("⚠️ Browser service not initialized, building one from environment config")
		cfg := config.Load()
		browserService = NewBrowserService(context.Background(), cfg, nil)
	}
	return browserService
}

// Query loads the dataset and filters it in one go.
func (b *BrowserService) Query(ctx context.Context, state models.FilterState) (QueryResult, error) {
	result, err := b.Loader.Load(ctx)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{
		Records: result.Records,
		Options: BuildFacetOptions(result.Records),
		Visible: FilterRecords(result.Records, state.Search, state),
		Skipped: result.Skipped,
	}, nil
}

// Refresh drops cached sheet rows so the next load goes upstream.
func (b *BrowserService) Refresh(ctx context.Context) {
	if b.Cache != nil {
		b.Cache.Invalidate(ctx)
	}
}

// Shutdown closes every live view.
func (b *BrowserService) Shutdown() {
	b.Views.CloseAll()
}

// StartJanitor evicts idle views in the background until ctx ends.
func (b *BrowserService) StartJanitor(ctx context.Context, interval time.Duration) {
	go b.Views.RunJanitor(ctx, interval)
}
