package services

import "github.com/brendanxryan/entitlemate-backend/models"

// FacetValues returns the distinct non-empty tokens of a multi-value facet
// across records, in first-seen order.
func FacetValues(records []models.Entitlement, f models.Facet) []string {
	group := buildGroup(records, f)
	values := make([]string, 0, len(group.Options))
	for _, opt := range group.Options {
		values = append(values, opt.Value)
	}
	return values
}

// BuildFacetOptions derives every facet group from the loaded records. The
// age group always lists the fixed bands; the other groups list what the
// data contains. Counts are the number of records carrying each value.
func BuildFacetOptions(records []models.Entitlement) models.FacetOptions {
	groups := make([]models.FacetGroup, 0, len(models.MultiValueFacets)+1)
	groups = append(groups, buildAgeGroup(records))
	for _, f := range models.MultiValueFacets {
		groups = append(groups, buildGroup(records, f))
	}
	return models.FacetOptions{Groups: groups}
}

func buildGroup(records []models.Entitlement, f models.Facet) models.FacetGroup {
	group := models.FacetGroup{Facet: f, Label: f.Label(), Options: []models.FilterOption{}}
	index := make(map[string]int)

	for _, r := range records {
		for _, token := range r.Tokens(f) {
			if token == "" {
				continue
			}
			if i, ok := index[token]; ok {
				group.Options[i].Count++
				continue
			}
			index[token] = len(group.Options)
			group.Options = append(group.Options, models.FilterOption{Label: token, Value: token, Count: 1})
		}
	}
	return group
}

func buildAgeGroup(records []models.Entitlement) models.FacetGroup {
	group := models.FacetGroup{
		Facet:   models.FacetAgeGroup,
		Label:   models.FacetAgeGroup.Label(),
		Options: make([]models.FilterOption, 0, len(models.AgeBands)),
	}
	for _, b := range models.AgeBands {
		count := 0
		for _, r := range records {
			if r.InAgeBand(b) {
				count++
			}
		}
		group.Options = append(group.Options, models.FilterOption{Label: string(b), Value: string(b), Count: count})
	}
	return group
}
