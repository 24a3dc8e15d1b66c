package services

import (
	"context"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/rs/zerolog/log"
)

// LoadResult is the published, well-formed part of the sheet.
type LoadResult struct {
	Records []models.Entitlement
	Skipped int
}

// Loader reads the sheet and keeps only published rows.
type Loader struct {
	Source Source
}

func NewLoader(source Source) *Loader {
	return &Loader{Source: source}
}

// Load fetches once and decodes. Failures come back as *LoadError.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	rows, err := l.Source.Fetch(ctx)
	if err != nil {
		le := classifyLoadError(err)
		log.Error().Err(err).Str("kind", string(le.Kind)).Msg("[loader.load] fetch failed")
		return LoadResult{}, le
	}

	decoded := DecodeRows(rows)
	for _, de := range decoded.Skipped {
		log.Warn().Err(de).Msg("[loader.load] skipping malformed row")
	}
	for _, de := range decoded.Warnings {
		log.Debug().Err(de).Msg("[loader.load] dropped invalid optional field")
	}

	published := make([]models.Entitlement, 0, len(decoded.Records))
	for _, r := range decoded.Records {
		if r.IsPublished() {
			published = append(published, r)
		}
	}

	log.Info().
		Int("rows", len(rows)).
		Int("published", len(published)).
		Int("skipped", len(decoded.Skipped)).
		Msg("[loader.load] entitlements loaded")

	return LoadResult{Records: published, Skipped: len(decoded.Skipped)}, nil
}
