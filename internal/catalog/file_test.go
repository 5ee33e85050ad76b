package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestLoaderUnsupportedFormat(t *testing.T) {
	_, err := NewLoader("./catalog.xlsx").Load()
	if err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestLoaderCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(sampleSheet), 0644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
}

func TestLoaderParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.parquet")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create parquet file: %v", err)
	}
	writer := parquet.NewGenericWriter[Row](file)
	_, err = writer.Write([]Row{
		{Name: "Cat", ImageURL: "http://img.test/cat.png", ThumbnailURL: "http://img.test/cat_t.png", Width: 640, Height: 480},
		{ImageURL: "http://img.test/anon.png"},
		{Name: "No Source"},
	})
	if err != nil {
		t.Fatalf("Failed to write parquet rows: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close parquet writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close parquet file: %v", err)
	}

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records (row without image URL skipped), got %d", len(records))
	}

	if records[0].Name != "Cat" || records[0].NativeWidth != 640 {
		t.Errorf("Unexpected first record: %+v", records[0])
	}

	anon := records[1]
	if anon.Name != "Image 2" {
		t.Errorf("Expected default name 'Image 2', got %q", anon.Name)
	}
	if anon.ThumbnailURL != anon.ImageURL {
		t.Errorf("Expected thumbnail fallback, got %q", anon.ThumbnailURL)
	}
	if anon.NativeWidth != 300 || anon.NativeHeight != 300 {
		t.Errorf("Expected default 300x300, got %dx%d", anon.NativeWidth, anon.NativeHeight)
	}
}
