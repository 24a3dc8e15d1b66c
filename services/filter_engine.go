package services

import (
	"strings"

	"github.com/brendanxryan/entitlemate-backend/models"
)

// Matches reports whether a record passes the search text and every active
// facet selection.
//
// Search is a case-insensitive substring match on name, headline and
// description. Within a facet the selected values are ORed; across facets
// the results are ANDed. A facet with nothing selected does not constrain.
func Matches(record models.Entitlement, search string, state models.FilterState) bool {
	return matchesSearch(record, strings.ToLower(search)) && matchesFacets(record, state)
}

// FilterRecords returns the records that match, in dataset order.
func FilterRecords(records []models.Entitlement, search string, state models.FilterState) []models.Entitlement {
	needle := strings.ToLower(search)
	visible := make([]models.Entitlement, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, needle) && matchesFacets(r, state) {
			visible = append(visible, r)
		}
	}
	return visible
}

func matchesSearch(record models.Entitlement, needle string) bool {
	if needle == "" {
		return true
	}
	// A row without a name never reaches the dataset, but a hand-built record
	// could; it has no text to match.
	if record.Name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(record.Name), needle) ||
		strings.Contains(strings.ToLower(record.Headline), needle) ||
		strings.Contains(strings.ToLower(record.Description), needle)
}

func matchesFacets(record models.Entitlement, state models.FilterState) bool {
	for f, selected := range state.Selected {
		if len(selected) == 0 {
			continue
		}
		if !matchesFacet(record, f, selected) {
			return false
		}
	}
	return true
}

func matchesFacet(record models.Entitlement, f models.Facet, selected []string) bool {
	if f == models.FacetAgeGroup {
		for _, band := range selected {
			if record.InAgeBand(models.AgeBand(band)) {
				return true
			}
		}
		return false
	}
	return record.Tokens(f).Intersects(selected)
}
