// Package images resolves image source references (URLs or local paths)
// into decoded rasters.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/tiff"
)

var (
	// ErrFetch means the source bytes could not be retrieved.
	ErrFetch = errors.New("image fetch failed")
	// ErrDecode means the source bytes were retrieved but are not a
	// readable image.
	ErrDecode = errors.New("image decode failed")
)

// Fetcher retrieves images from HTTP sources or the local filesystem
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Resolve turns a source reference into a decoded image. http(s)
// references are downloaded; anything else is treated as a local path.
func (f *Fetcher) Resolve(ctx context.Context, src string) (image.Image, error) {
	var data []byte
	var err error
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = f.Download(ctx, src)
	} else {
		data, err = os.ReadFile(src)
		if err != nil {
			err = fmt.Errorf("%w: read %s: %v", ErrFetch, src, err)
		}
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Download fetches the raw bytes behind a URL.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %v", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download %s: HTTP %d", ErrFetch, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFetch, url, err)
	}

	return data, nil
}

// Decode decodes image bytes in any registered format.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Dimensions reads the native pixel dimensions of encoded image bytes
// without decoding the full raster.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, nil
}
