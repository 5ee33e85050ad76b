package compositor

import (
	"context"
	"image"
	"log/slog"
	"math"
	"os"

	"github.com/disintegration/imaging"
)

// DefaultWatermarkURL is where the watermark asset lives unless the
// WATERMARK_URL environment variable overrides it.
const DefaultWatermarkURL = "https://static.blink.new/assets/watermark.png"

const (
	watermarkWidthRatio = 0.2
	watermarkMargin     = 10
	watermarkOpacity    = 0.8
)

// Stamper applies the fixed watermark asset to base images.
type Stamper struct {
	resolve Resolver
	url     string
}

// NewStamper creates a stamper that fetches the watermark through resolve.
func NewStamper(resolve Resolver) *Stamper {
	url := os.Getenv("WATERMARK_URL")
	if url == "" {
		url = DefaultWatermarkURL
	}
	return &Stamper{resolve: resolve, url: url}
}

// Apply stamps the watermark onto base. A watermark that cannot be
// fetched or decoded never fails the operation; the base is returned
// unmodified.
func (s *Stamper) Apply(ctx context.Context, base image.Image) image.Image {
	wm, err := s.resolve(ctx, s.url)
	if err != nil {
		slog.Warn("Watermark unavailable, keeping base unmodified", "url", s.url, "err", err)
		return base
	}
	return Stamp(base, wm)
}

// Stamp composites wm onto base at 20% of the base width with the
// watermark's aspect ratio preserved, anchored 10px in from the
// bottom-right corner, at 80% opacity. The result has the base's native
// dimensions.
func Stamp(base image.Image, wm image.Image) *image.NRGBA {
	bounds := base.Bounds()

	w := int(math.Round(float64(bounds.Dx()) * watermarkWidthRatio))
	if w < 1 {
		w = 1
	}
	scaled := imaging.Resize(wm, w, 0, imaging.Lanczos)

	pos := image.Pt(
		bounds.Dx()-scaled.Bounds().Dx()-watermarkMargin,
		bounds.Dy()-scaled.Bounds().Dy()-watermarkMargin,
	)
	return imaging.Overlay(base, scaled, pos, watermarkOpacity)
}
