package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// charsPerLine approximates how many 9pt characters fit across a full-width
// A4 column with 20mm margins.
const charsPerLine = 95

// RenderEntitlementsPDF lays out the visible cards one after another, with
// the active filters in the header.
func RenderEntitlementsPDF(visible []models.Entitlement, state models.FilterState, generatedAt time.Time) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	// Colors
	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text("ENTITLEMENTS", props.Text{
				Size:  20,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%d matching - generated %s", len(visible), generatedAt.Format("2 Jan 2006 15:04")), props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
	})

	if summary := describeFilters(state); summary != "" {
		m.Row(rowHeight(summary, 5), func() {
			m.Col(12, func() {
				m.Text(summary, props.Text{
					Size:  9,
					Color: mediumGray,
				})
			})
		})
	}

	m.Row(6, func() {})

	for _, e := range visible {
		m.Row(7, func() {
			m.Col(12, func() {
				m.Text(e.Name, props.Text{
					Size:  12,
					Style: consts.Bold,
					Color: darkGray,
				})
			})
		})

		if e.Headline != "" {
			m.Row(rowHeight(e.Headline, 5), func() {
				m.Col(12, func() {
					m.Text(e.Headline, props.Text{
						Size:  10,
						Style: consts.Bold,
						Color: darkGray,
					})
				})
			})
		}

		if e.Description != "" {
			m.Row(rowHeight(e.Description, 5), func() {
				m.Col(12, func() {
					m.Text(e.Description, props.Text{
						Size:  9,
						Color: darkGray,
					})
				})
			})
		}

		if value := e.FormattedValue(); value != "" {
			m.Row(5, func() {
				m.Col(12, func() {
					m.Text("Estimated value: "+value, props.Text{
						Size:  9,
						Style: consts.Bold,
						Color: darkGray,
					})
				})
			})
		}

		if e.GovLink != "" {
			m.Row(5, func() {
				m.Col(12, func() {
					m.Text(e.GovLink, props.Text{
						Size:  8,
						Color: mediumGray,
					})
				})
			})
		}

		m.Line(4)
	}

	// Output to buffer
	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render entitlements pdf: %w", err)
	}
	return &buf, nil
}

func describeFilters(state models.FilterState) string {
	var parts []string
	if state.Search != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", state.Search))
	}
	for _, f := range models.AllFacets() {
		if selected := state.Selection(f); len(selected) > 0 {
			parts = append(parts, f.Label()+": "+strings.Join(selected, ", "))
		}
	}
	return strings.Join(parts, " | ")
}

func rowHeight(text string, lineHeight float64) float64 {
	lines := len([]rune(text))/charsPerLine + 1
	return float64(lines) * lineHeight
}
