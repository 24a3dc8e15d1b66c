package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/shopspring/decimal"
)

// Sheet column names that are not facets.
const (
	ColumnName          = "Name"
	ColumnHeadline      = "Headline"
	ColumnDescription   = "Description"
	ColumnStatus        = "Status"
	ColumnValueEstimate = "ValueEstimate"
	ColumnGovLink       = "GovLink"
)

var ErrMissingName = errors.New("missing required field")

// DecodeError describes a problem with one sheet row. Row is the zero-based
// position in the fetched array.
type DecodeError struct {
	Row    int
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeResult is the outcome of decoding a whole sheet.
type DecodeResult struct {
	Records  []models.Entitlement
	Skipped  []*DecodeError // rows dropped entirely
	Warnings []*DecodeError // optional fields dropped from kept rows
}

// DecodeRows decodes every row, skipping malformed rows instead of failing.
func DecodeRows(rows []models.RawRow) DecodeResult {
	var result DecodeResult
	for i, row := range rows {
		record, warnings, err := DecodeRow(i, row)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				result.Skipped = append(result.Skipped, de)
			} else {
				result.Skipped = append(result.Skipped, &DecodeError{Row: i, Field: "row", Reason: err.Error(), Err: err})
			}
			continue
		}
		result.Records = append(result.Records, record)
	}
	return result
}

// DecodeRow converts one loose sheet row into a typed Entitlement. A row
// without a name is an error; bad optional values are dropped and reported
// as warnings.
func DecodeRow(index int, row models.RawRow) (models.Entitlement, []*DecodeError, error) {
	name := strings.TrimSpace(cellString(row[ColumnName]))
	if name == "" {
		return models.Entitlement{}, nil, &DecodeError{Row: index, Field: ColumnName, Reason: "missing", Err: ErrMissingName}
	}

	record := models.Entitlement{
		Name:        name,
		Headline:    strings.TrimSpace(cellString(row[ColumnHeadline])),
		Description: strings.TrimSpace(cellString(row[ColumnDescription])),
		Status:      cellString(row[ColumnStatus]),
	}

	for _, f := range models.MultiValueFacets {
		if tokens := models.ParseTokenSet(cellString(row[string(f)])); len(tokens) > 0 {
			if record.Facets == nil {
				record.Facets = make(map[models.Facet]models.TokenSet)
			}
			record.Facets[f] = tokens
		}
	}

	for _, b := range models.AgeBands {
		if strings.EqualFold(cellString(row[string(b)]), "true") {
			if record.AgeBands == nil {
				record.AgeBands = make(map[models.AgeBand]bool)
			}
			record.AgeBands[b] = true
		}
	}

	var warnings []*DecodeError

	if raw, ok := row[ColumnValueEstimate]; ok && cellString(raw) != "" {
		value, err := parseValueEstimate(raw)
		if err != nil {
			warnings = append(warnings, &DecodeError{Row: index, Field: ColumnValueEstimate, Reason: "not a number", Err: err})
		} else {
			record.ValueEstimate = &value
		}
	}

	if link := strings.TrimSpace(cellString(row[ColumnGovLink])); link != "" {
		if isHTTPURL(link) {
			record.GovLink = link
		} else {
			warnings = append(warnings, &DecodeError{Row: index, Field: ColumnGovLink, Reason: "not an http(s) URL"})
		}
	}

	return record, warnings, nil
}

// cellString renders any JSON cell value as the text a spreadsheet would
// show. Absent and null cells are "".
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func parseValueEstimate(v any) (decimal.Decimal, error) {
	if f, ok := v.(float64); ok {
		return decimal.NewFromFloat(f), nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(cellString(v))
	return decimal.NewFromString(cleaned)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
