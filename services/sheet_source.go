package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/rs/zerolog/log"
)

// maxSheetBytes bounds the response body; the sheet is tens to low
// thousands of rows.
const maxSheetBytes = 16 << 20

// SheetSource reads rows from a spreadsheet-as-API endpoint returning a JSON
// array of flat objects.
type SheetSource struct {
	URL    string
	Client *http.Client
}

func NewSheetSource(url string, timeout time.Duration) *SheetSource {
	return &SheetSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch issues one GET. It does not retry.
func (s *SheetSource) Fetch(ctx context.Context) ([]models.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrSourceStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrSourceUnavailable, err)
	}

	var rows []models.RawRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDecode, err)
	}

	log.Debug().
		Str("url", s.URL).
		Int("rows", len(rows)).
		Dur("took", time.Since(start)).
		Msg("[sheet.fetch] rows fetched")

	return rows, nil
}
