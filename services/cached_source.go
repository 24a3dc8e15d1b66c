package services

import (
	"context"

	"github.com/brendanxryan/entitlemate-backend/models"
)

// RowCache is the subset of the dataset cache a CachedSource needs.
type RowCache interface {
	Get(ctx context.Context) ([]models.RawRow, bool)
	Set(ctx context.Context, rows []models.RawRow)
}

// CachedSource serves fetched rows from a cache while they are fresh. Each
// view still loads exactly once; the cache only spares the upstream sheet
// when many views mount close together.
type CachedSource struct {
	Source Source
	Cache  RowCache
}

func (s *CachedSource) Fetch(ctx context.Context) ([]models.RawRow, error) {
	if rows, ok := s.Cache.Get(ctx); ok {
		return rows, nil
	}
	rows, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, rows)
	return rows, nil
}
