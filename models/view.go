package models

import (
	"time"

	"github.com/google/uuid"
)

// LoadState tracks a view's single dataset fetch.
type LoadState string

const (
	LoadStateLoading LoadState = "loading"
	LoadStateReady   LoadState = "ready"
	LoadStateFailed  LoadState = "failed"
	LoadStateClosed  LoadState = "closed"
)

// LoadFailure is the retrievable "load failed" state exposed to the page.
type LoadFailure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ViewSnapshot is the complete state of one browser view at a point in time.
// Snapshots are values: updates build a new snapshot and swap it in whole.
type ViewSnapshot struct {
	ID        uuid.UUID     `json:"id"`
	State     LoadState     `json:"state"`
	LoadError *LoadFailure  `json:"loadError,omitempty"`
	Records   []Entitlement `json:"-"`
	Skipped   int           `json:"skipped"`
	Options   FacetOptions  `json:"options"`
	Filters   FilterState   `json:"filters"`
	Visible   []Entitlement `json:"visible"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ViewSummary is the JSON body returned by the view endpoints. Total counts
// loaded (published, well-formed) records.
type ViewSummary struct {
	ViewSnapshot
	Total        int `json:"total"`
	VisibleCount int `json:"visibleCount"`
}

func (s ViewSnapshot) Summary() ViewSummary {
	return ViewSummary{
		ViewSnapshot: s,
		Total:        len(s.Records),
		VisibleCount: len(s.Visible),
	}
}

// SearchRequest is the body of PATCH /views/:id/search.
type SearchRequest struct {
	Search string `json:"search"`
}

// ToggleRequest is the body of POST /views/:id/toggle.
type ToggleRequest struct {
	Facet string `json:"facet" binding:"required"`
	Value string `json:"value" binding:"required"`
}
