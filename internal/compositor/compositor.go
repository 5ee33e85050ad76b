// Package compositor flattens a base image, an optional watermark, and an
// ordered list of overlay placements into a single raster at the base
// image's native resolution.
package compositor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/blink-new/overlay-composer/internal/models"
	"github.com/disintegration/imaging"
)

// ExportFilename is the fixed name of the downloadable export.
const ExportFilename = "composition.png"

// Resolver turns an overlay source reference into a decoded image.
type Resolver func(ctx context.Context, src string) (image.Image, error)

// Flatten renders base at (0,0) unscaled on a canvas of its own native
// dimensions, then draws each overlay in insertion order (later = on top)
// with its display rectangle scaled by nativeBase/frame per axis. The
// output resolution is always the base's native resolution, independent
// of the frame size.
//
// Any overlay whose source fails to resolve aborts the whole export; no
// partial result is returned.
func Flatten(ctx context.Context, base image.Image, frame models.DisplayFrame, overlays []models.OverlayPlacement, resolve Resolver) (*image.NRGBA, error) {
	bounds := base.Bounds()
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("display frame has no area: %gx%g", frame.Width, frame.Height)
	}

	scaleX := float64(bounds.Dx()) / frame.Width
	scaleY := float64(bounds.Dy()) / frame.Height

	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{})
	canvas = imaging.Paste(canvas, base, image.Pt(0, 0))

	for _, ov := range overlays {
		src, err := resolve(ctx, ov.SourceURL)
		if err != nil {
			return nil, fmt.Errorf("overlay %s: %w", ov.ID, err)
		}

		w := int(math.Round(ov.Width * scaleX))
		h := int(math.Round(ov.Height * scaleY))
		if w < 1 || h < 1 {
			// Degenerate rectangle, nothing to draw
			continue
		}

		scaled := imaging.Resize(src, w, h, imaging.Lanczos)
		pos := image.Pt(int(math.Round(ov.X*scaleX)), int(math.Round(ov.Y*scaleY)))
		canvas = imaging.Overlay(canvas, scaled, pos, 1.0)
	}

	return canvas, nil
}

// Encode serializes a flattened canvas in the export encoding.
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
