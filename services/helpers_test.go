package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brendanxryan/entitlemate-backend/models"
)

// staticSource returns fixed rows (or a fixed error) and counts fetches.
type staticSource struct {
	rows  []models.RawRow
	err   error
	calls atomic.Int32
}

func (s *staticSource) Fetch(ctx context.Context) ([]models.RawRow, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

// gatedLoader blocks until release is closed, ignoring cancellation, so a
// test can deliver a result after the view has gone away.
type gatedLoader struct {
	release chan struct{}
	result  LoadResult
	err     error
}

func (g *gatedLoader) Load(ctx context.Context) (LoadResult, error) {
	<-g.release
	return g.result, g.err
}

func scenarioRows() []models.RawRow {
	return []models.RawRow{
		{"Name": "Pension Boost", "Status": "Published", "Category": "Retirement, Tax", "60-65": "true"},
		{"Name": "Rent Rebate", "Status": "Draft", "Category": "Housing"},
	}
}

func sampleRecords() []models.Entitlement {
	return []models.Entitlement{
		{
			Name:        "Pension Boost",
			Headline:    "Top up your pension",
			Description: "Extra payment for retirees",
			Status:      models.StatusPublished,
			Facets: map[models.Facet]models.TokenSet{
				models.FacetCategory: {"Retirement", "Tax"},
				models.FacetState:    {"NSW", "VIC"},
			},
			AgeBands: map[models.AgeBand]bool{models.Age60To65: true},
		},
		{
			Name:        "Energy Rebate",
			Headline:    "Lower power bills",
			Description: "Annual ABC discount on electricity",
			Status:      models.StatusPublished,
			Facets: map[models.Facet]models.TokenSet{
				models.FacetCategory:    {"Utilities"},
				models.FacetState:       {"QLD"},
				models.FacetPaymentType: {"Rebate"},
			},
			AgeBands: map[models.AgeBand]bool{models.Age67To75: true, models.Age75Plus: true},
		},
		{
			Name:   "Transport Concession",
			Status: models.StatusPublished,
			Facets: map[models.Facet]models.TokenSet{
				models.FacetCategory: {"Transport", "Tax"},
			},
		},
	}
}

func names(records []models.Entitlement) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func mountAndWait(t *testing.T, v *View) models.ViewSnapshot {
	t.Helper()
	v.Mount(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := v.Wait(ctx); err != nil {
		t.Fatalf("view did not finish loading: %v", err)
	}
	return v.Snapshot()
}
