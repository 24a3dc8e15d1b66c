// models/filters.go
package models

import "sort"

// FilterOption is one toggle button in a facet group.
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetGroup is the option list for a single facet.
type FacetGroup struct {
	Facet   Facet          `json:"facet"`
	Label   string         `json:"label"`
	Options []FilterOption `json:"options"`
}

// FacetOptions holds every facet group in display order.
type FacetOptions struct {
	Groups []FacetGroup `json:"groups"`
}

// Group returns the group for f.
func (o FacetOptions) Group(f Facet) (FacetGroup, bool) {
	for _, g := range o.Groups {
		if g.Facet == f {
			return g, true
		}
	}
	return FacetGroup{}, false
}

// Values returns the option values for f in display order.
func (o FacetOptions) Values(f Facet) []string {
	g, ok := o.Group(f)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(g.Options))
	for _, opt := range g.Options {
		values = append(values, opt.Value)
	}
	return values
}

// FilterState is an immutable snapshot of the user's search text and facet
// selections. Every update returns a new value; the receiver is never
// modified. Selections are kept sorted so equal sets compare equal.
type FilterState struct {
	Search   string             `json:"search"`
	Selected map[Facet][]string `json:"selected,omitempty"`
}

// NewFilterState builds a normalized state from loose input: values are
// deduplicated and sorted, empty selections dropped.
func NewFilterState(search string, selected map[Facet][]string) FilterState {
	state := FilterState{Search: search}
	for f, values := range selected {
		for _, v := range values {
			if v == "" || state.IsSelected(f, v) {
				continue
			}
			state = state.Toggle(f, v)
		}
	}
	return state
}

// WithSearch returns a copy with the search text replaced.
func (s FilterState) WithSearch(search string) FilterState {
	return FilterState{Search: search, Selected: s.cloneSelected()}
}

// Toggle adds value to the facet's selection if absent and removes it if
// present. Other facets are carried over unchanged.
func (s FilterState) Toggle(f Facet, value string) FilterState {
	next := FilterState{Search: s.Search, Selected: s.cloneSelected()}
	if next.Selected == nil {
		next.Selected = map[Facet][]string{}
	}

	current := next.Selected[f]
	idx := sort.SearchStrings(current, value)
	if idx < len(current) && current[idx] == value {
		current = append(current[:idx:idx], current[idx+1:]...)
	} else {
		current = append(current[:idx:idx], append([]string{value}, current[idx:]...)...)
	}

	if len(current) == 0 {
		delete(next.Selected, f)
	} else {
		next.Selected[f] = current
	}
	if len(next.Selected) == 0 {
		next.Selected = nil
	}
	return next
}

// Selection returns the selected values for f, sorted.
func (s FilterState) Selection(f Facet) []string {
	return s.Selected[f]
}

func (s FilterState) IsSelected(f Facet, value string) bool {
	current := s.Selected[f]
	idx := sort.SearchStrings(current, value)
	return idx < len(current) && current[idx] == value
}

// Active reports whether any constraint is set.
func (s FilterState) Active() bool {
	return s.Search != "" || len(s.Selected) > 0
}

func (s FilterState) cloneSelected() map[Facet][]string {
	if len(s.Selected) == 0 {
		return nil
	}
	out := make(map[Facet][]string, len(s.Selected))
	for f, values := range s.Selected {
		out[f] = append([]string(nil), values...)
	}
	return out
}
