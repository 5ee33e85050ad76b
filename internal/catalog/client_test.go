package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleSheet = `id,name,image_url,thumbnail_url,width,height
1,Cat,http://img.test/cat.png,http://img.test/cat_t.png,640,480
2,only,three
3,,http://img.test/anon.png,,n/a,480
4,"  Quoted Dog  ",http://img.test/dog.png,http://img.test/dog_t.png,800,600
5,No Source,,http://img.test/none_t.png,100,100
`

func TestParse(t *testing.T) {
	records := Parse(sampleSheet)

	if len(records) != 3 {
		t.Fatalf("Expected 3 accepted records, got %d", len(records))
	}

	first := records[0]
	if first.Name != "Cat" || first.ImageURL != "http://img.test/cat.png" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if first.NativeWidth != 640 || first.NativeHeight != 480 {
		t.Errorf("Expected 640x480, got %dx%d", first.NativeWidth, first.NativeHeight)
	}

	// Row 3 (blank name, blank thumbnail, unparseable width)
	anon := records[1]
	if anon.Name != "Image 3" {
		t.Errorf("Expected default name 'Image 3', got %q", anon.Name)
	}
	if anon.ThumbnailURL != anon.ImageURL {
		t.Errorf("Expected thumbnail fallback to image URL, got %q", anon.ThumbnailURL)
	}
	if anon.NativeWidth != 300 {
		t.Errorf("Expected default width 300, got %d", anon.NativeWidth)
	}
	if anon.NativeHeight != 480 {
		t.Errorf("Expected height 480, got %d", anon.NativeHeight)
	}

	// Row 4 (quotes and whitespace stripped)
	if records[2].Name != "Quoted Dog" {
		t.Errorf("Expected quotes and whitespace stripped, got %q", records[2].Name)
	}
}

func TestParseSkipsShortRows(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected int
	}{
		{
			name:     "header only",
			data:     "id,name,image,thumb,w,h\n",
			expected: 0,
		},
		{
			name:     "five fields",
			data:     "h1,h2,h3,h4,h5,h6\n1,Name,http://x/a.png,,300\n",
			expected: 0,
		},
		{
			name:     "six fields",
			data:     "h1,h2,h3,h4,h5,h6\n1,Name,http://x/a.png,,300,300\n",
			expected: 1,
		},
		{
			name:     "blank lines ignored",
			data:     "h1,h2,h3,h4,h5,h6\n\n1,Name,http://x/a.png,,300,300\n\n",
			expected: 1,
		},
		{
			name:     "crlf line endings",
			data:     "h1,h2,h3,h4,h5,h6\r\n1,Name,http://x/a.png,,300,300\r\n",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Parse(tt.data)
			if len(records) != tt.expected {
				t.Errorf("Expected %d records, got %d", tt.expected, len(records))
			}
		})
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		if _, err := w.Write([]byte(sampleSheet)); err != nil {
			t.Errorf("Unable to write response: %v", err)
		}
	}))
	defer server.Close()

	records, err := NewClient().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient().Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("Expected ErrFetch, got %v", err)
	}
}
