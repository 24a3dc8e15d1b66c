package services

import (
	"errors"
	"testing"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestDecodeRow(t *testing.T) {
	t.Parallel()
	row := models.RawRow{
		"Name":               "  Pension Boost ",
		"Headline":           "Top up",
		"Description":        "For retirees",
		"Status":             "Published",
		"Category":           "Retirement, Tax, ,Retirement",
		"State":              "NSW",
		"LifeEvent":          nil,
		"60-65":              "TRUE",
		"65-67":              "false",
		"75+":                true,
		"ValueEstimate":      "$1,250.50",
		"GovLink":            "https://www.servicesaustralia.gov.au/pension",
		"SomeUnknownColumn":  "ignored",
		"RelationshipStatus": "",
	}

	got, warnings, err := DecodeRow(0, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	value := decimal.RequireFromString("1250.50")
	want := models.Entitlement{
		Name:        "Pension Boost",
		Headline:    "Top up",
		Description: "For retirees",
		Status:      "Published",
		Facets: map[models.Facet]models.TokenSet{
			models.FacetCategory: {"Retirement", "Tax"},
			models.FacetState:    {"NSW"},
		},
		AgeBands: map[models.AgeBand]bool{
			models.Age60To65: true,
			models.Age75Plus: true,
		},
		ValueEstimate: &value,
		GovLink:       "https://www.servicesaustralia.gov.au/pension",
	}

	opt := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("DecodeRow mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRowMissingName(t *testing.T) {
	t.Parallel()
	for _, row := range []models.RawRow{
		{"Status": "Published"},
		{"Name": "   ", "Status": "Published"},
		{"Name": nil},
	} {
		_, _, err := DecodeRow(3, row)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected *DecodeError, got %v", err)
		}
		if de.Row != 3 || de.Field != ColumnName {
			t.Errorf("unexpected decode error %+v", de)
		}
		if !errors.Is(err, ErrMissingName) {
			t.Errorf("expected ErrMissingName, got %v", err)
		}
	}
}

func TestDecodeRowOptionalFieldWarnings(t *testing.T) {
	t.Parallel()
	got, warnings, err := DecodeRow(1, models.RawRow{
		"Name":          "Odd Row",
		"ValueEstimate": "about fifty",
		"GovLink":       "javascript:alert(1)",
	})
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if got.ValueEstimate != nil {
		t.Errorf("expected no value estimate, got %v", got.ValueEstimate)
	}
	if got.GovLink != "" {
		t.Errorf("expected unsafe link to be dropped, got %q", got.GovLink)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestDecodeRowNumericCells(t *testing.T) {
	t.Parallel()
	got, _, err := DecodeRow(0, models.RawRow{"Name": "Numbers", "ValueEstimate": 420.0, "Status": "Published"})
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if got.FormattedValue() != "$420" {
		t.Errorf("FormattedValue = %q, want $420", got.FormattedValue())
	}
}

func TestDecodeRowValueFormatting(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cell any
		want string
	}{
		{"$1,250.50", "$1,250.50"},
		{"250.00", "$250"},
		{"1250000", "$1,250,000"},
		{" $ 99.9 ", "$99.90"},
		{1250.5, "$1,250.50"},
	}
	for _, tt := range tests {
		got, warnings, err := DecodeRow(0, models.RawRow{"Name": "Value", "Status": "Published", "ValueEstimate": tt.cell})
		if err != nil || len(warnings) != 0 {
			t.Fatalf("DecodeRow(%v): err=%v warnings=%v", tt.cell, err, warnings)
		}
		if v := got.FormattedValue(); v != tt.want {
			t.Errorf("ValueEstimate %v formatted as %q, want %q", tt.cell, v, tt.want)
		}
	}
}

func TestDecodeRows(t *testing.T) {
	t.Parallel()
	result := DecodeRows([]models.RawRow{
		{"Name": "One", "Status": "Published"},
		{"Status": "Published"},
		{"Name": "Two", "Status": "Draft", "GovLink": "not a url"},
	})

	if diff := cmp.Diff([]string{"One", "Two"}, names(result.Records)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Row != 1 {
		t.Errorf("expected row 1 skipped, got %v", result.Skipped)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Field != ColumnGovLink {
		t.Errorf("expected one GovLink warning, got %v", result.Warnings)
	}
}
