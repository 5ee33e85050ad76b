package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/blink-new/overlay-composer/internal/models"
	"github.com/parquet-go/parquet-go"
)

// Loader handles loading catalog records from local files
type Loader struct {
	path string
}

// NewLoader creates a new file loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Row is the schema of a Parquet catalog file.
type Row struct {
	Name         string `parquet:"name,optional"`
	ImageURL     string `parquet:"image_url"`
	ThumbnailURL string `parquet:"thumbnail_url,optional"`
	Width        int32  `parquet:"width,optional"`
	Height       int32  `parquet:"height,optional"`
}

// Load loads records from a catalog file (CSV or Parquet)
func (l *Loader) Load() ([]models.ImageRecord, error) {
	// Detect file format
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".csv":
		return l.loadCSV()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet)", ext)
	}
}

// loadCSV loads records from a CSV file using the same permissive row
// policy as the remote sheet.
func (l *Loader) loadCSV() ([]models.ImageRecord, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	return Parse(string(data)), nil
}

// loadParquet loads records from a Parquet file
func (l *Loader) loadParquet() ([]models.ImageRecord, error) {
	slog.Debug("Opening Parquet file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var records []models.ImageRecord
	rows := make([]Row, 128) // Read in batches

	rowNum := 0
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			rowNum++
			rec := rowToRecord(row, rowNum)
			if rec.ImageURL == "" {
				slog.Debug("Skipping parquet row without image URL", "row", rowNum)
				continue
			}
			records = append(records, rec)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(records))

	return records, nil
}

func rowToRecord(row Row, rowNum int) models.ImageRecord {
	rec := models.ImageRecord{
		Name:         row.Name,
		ImageURL:     row.ImageURL,
		ThumbnailURL: row.ThumbnailURL,
		NativeWidth:  int(row.Width),
		NativeHeight: int(row.Height),
	}
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("Image %d", rowNum)
	}
	if rec.ThumbnailURL == "" {
		rec.ThumbnailURL = rec.ImageURL
	}
	if rec.NativeWidth <= 0 {
		rec.NativeWidth = defaultDimension
	}
	if rec.NativeHeight <= 0 {
		rec.NativeHeight = defaultDimension
	}
	return rec
}
