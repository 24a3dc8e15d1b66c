// ════════════════════════════════════════════════════════════
// ENTITLEMENT MODELS
// File: models/entitlement.go
// ════════════════════════════════════════════════════════════

package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StatusPublished is the only status value that makes a row visible.
const StatusPublished = "Published"

// RawRow is one row as returned by the sheet API: column header -> cell.
type RawRow map[string]any

// Facet names a filterable attribute. The values double as the sheet column
// names and the query parameter names.
type Facet string

const (
	FacetCategory           Facet = "Category"
	FacetState              Facet = "State"
	FacetAgeGroup           Facet = "AgeGroup"
	FacetLifeEvent          Facet = "LifeEvent"
	FacetPaymentType        Facet = "PaymentType"
	FacetRelationshipStatus Facet = "RelationshipStatus"
	FacetHomeOwnership      Facet = "HomeOwnership"
	FacetCardType           Facet = "CardType"
)

// MultiValueFacets are stored as comma-separated cells, in display order.
var MultiValueFacets = []Facet{
	FacetCategory,
	FacetState,
	FacetLifeEvent,
	FacetPaymentType,
	FacetRelationshipStatus,
	FacetHomeOwnership,
	FacetCardType,
}

// AllFacets returns every facet in display order, age group first.
func AllFacets() []Facet {
	return append([]Facet{FacetAgeGroup}, MultiValueFacets...)
}

// ParseFacet resolves a facet name case-insensitively.
func ParseFacet(name string) (Facet, bool) {
	name = strings.TrimSpace(name)
	for _, f := range AllFacets() {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

// Label is the human readable group title.
func (f Facet) Label() string {
	switch f {
	case FacetAgeGroup:
		return "Age group"
	case FacetLifeEvent:
		return "Life event"
	case FacetPaymentType:
		return "Payment type"
	case FacetRelationshipStatus:
		return "Relationship status"
	case FacetHomeOwnership:
		return "Home ownership"
	case FacetCardType:
		return "Card type"
	default:
		return string(f)
	}
}

// AgeBand is one of the fixed age ranges. Each band has its own sheet column
// named exactly after the band label.
type AgeBand string

const (
	AgeUnder55 AgeBand = "<55"
	Age55To60  AgeBand = "55-60"
	Age60To65  AgeBand = "60-65"
	Age65To67  AgeBand = "65-67"
	Age67To75  AgeBand = "67-75"
	Age75Plus  AgeBand = "75+"
)

var AgeBands = []AgeBand{AgeUnder55, Age55To60, Age60To65, Age65To67, Age67To75, Age75Plus}

func ParseAgeBand(label string) (AgeBand, bool) {
	label = strings.TrimSpace(label)
	for _, b := range AgeBands {
		if string(b) == label {
			return b, true
		}
	}
	return "", false
}

// TokenSet is an ordered set of trimmed, non-empty tokens.
type TokenSet []string

// ParseTokenSet splits a comma-separated cell into a TokenSet, dropping
// blanks and duplicates while keeping first-seen order.
func ParseTokenSet(raw string) TokenSet {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var set TokenSet
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" || set.Contains(token) {
			continue
		}
		set = append(set, token)
	}
	return set
}

func (s TokenSet) Contains(token string) bool {
	for _, t := range s {
		if t == token {
			return true
		}
	}
	return false
}

// Intersects reports whether any of values is in the set.
func (s TokenSet) Intersects(values []string) bool {
	for _, v := range values {
		if s.Contains(v) {
			return true
		}
	}
	return false
}

// Entitlement is one decoded, typed sheet row.
type Entitlement struct {
	Name          string             `json:"name"`
	Headline      string             `json:"headline,omitempty"`
	Description   string             `json:"description,omitempty"`
	Status        string             `json:"status"`
	Facets        map[Facet]TokenSet `json:"facets,omitempty"`
	AgeBands      map[AgeBand]bool   `json:"ageBands,omitempty"`
	ValueEstimate *decimal.Decimal   `json:"valueEstimate,omitempty"`
	GovLink       string             `json:"govLink,omitempty"`
}

func (e Entitlement) IsPublished() bool {
	return e.Status == StatusPublished
}

// Tokens returns the record's values for a multi-value facet (nil if absent).
func (e Entitlement) Tokens(f Facet) TokenSet {
	return e.Facets[f]
}

func (e Entitlement) InAgeBand(b AgeBand) bool {
	return e.AgeBands[b]
}

// FormattedValue renders the value estimate as dollars with thousands
// separators, showing cents only when there are any. "" when the row has no
// estimate.
func (e Entitlement) FormattedValue() string {
	if e.ValueEstimate == nil {
		return ""
	}
	return formatDollars(*e.ValueEstimate)
}

func formatDollars(v decimal.Decimal) string {
	var places int32
	if !v.Equal(v.Truncate(0)) {
		places = 2
	}
	whole, cents, _ := strings.Cut(v.Abs().StringFixed(places), ".")

	var b strings.Builder
	if v.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if cents != "" {
		b.WriteString("." + cents)
	}
	return b.String()
}
