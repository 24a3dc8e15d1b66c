package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads rows from an .xlsx export of the entitlement sheet.
// The first row holds the column headers.
type WorkbookSource struct {
	Path  string
	Sheet string // defaults to the first sheet
}

func NewWorkbookSource(path, sheet string) *WorkbookSource {
	return &WorkbookSource{Path: path, Sheet: sheet}
}

func (s *WorkbookSource) Fetch(ctx context.Context) ([]models.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSourceDecode)
		}
		sheet = sheets[0]
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrSourceDecode, sheet, err)
	}
	return rowsFromGrid(grid), nil
}

// rowsFromGrid turns a header row plus data rows into RawRows. Columns with
// a blank header and fully blank rows are ignored.
func rowsFromGrid(grid [][]string) []models.RawRow {
	if len(grid) == 0 {
		return nil
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]models.RawRow, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := models.RawRow{}
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" || cell == "" {
				continue
			}
			row[headers[i]] = cell
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
