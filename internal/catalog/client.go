// Package catalog loads image records from tabular catalog sources: a
// remote sheet published as CSV, or local CSV/Parquet files.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/blink-new/overlay-composer/internal/models"
)

// ErrFetch means the catalog source was unreachable or answered with a
// non-success status.
var ErrFetch = errors.New("catalog fetch failed")

// Default native dimensions for rows that don't carry parseable ones.
const defaultDimension = 300

// Client fetches a remote catalog sheet
type Client struct {
	HTTPClient *http.Client
}

// NewClient creates a new catalog client
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads a catalog sheet and parses it into image records.
// There is no retry; a transport failure or non-200 status is surfaced
// once as ErrFetch.
func (c *Client) Fetch(ctx context.Context, url string) ([]models.ImageRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrFetch, err)
	}

	records := Parse(string(body))
	slog.Info("Catalog loaded", "url", url, "records", len(records))
	return records, nil
}

// Parse applies the permissive sheet policy: the first line is a header
// and is skipped; each remaining line is split on commas with quotes and
// surrounding whitespace stripped per field. A row is accepted only if it
// has at least 6 fields and a non-blank image URL; malformed rows are
// skipped, never fatal. Blank names default to "Image {i}" with i the
// 1-based row index, blank thumbnails fall back to the image URL, and
// unparseable dimensions default to 300.
func Parse(data string) []models.ImageRecord {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	var records []models.ImageRecord
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 6 {
			slog.Debug("Skipping short catalog row", "row", i, "fields", len(fields))
			continue
		}
		for j := range fields {
			fields[j] = cleanField(fields[j])
		}

		rec := models.ImageRecord{
			Name:         fields[1],
			ImageURL:     fields[2],
			ThumbnailURL: fields[3],
			NativeWidth:  parseDimension(fields[4]),
			NativeHeight: parseDimension(fields[5]),
		}
		if rec.ImageURL == "" {
			slog.Debug("Skipping catalog row without image URL", "row", i)
			continue
		}
		if rec.Name == "" {
			rec.Name = fmt.Sprintf("Image %d", i)
		}
		if rec.ThumbnailURL == "" {
			rec.ThumbnailURL = rec.ImageURL
		}

		records = append(records, rec)
	}

	return records
}

func cleanField(field string) string {
	return strings.TrimSpace(strings.ReplaceAll(field, `"`, ""))
}

func parseDimension(field string) int {
	d, err := strconv.Atoi(field)
	if err != nil {
		return defaultDimension
	}
	return d
}
