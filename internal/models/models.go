package models

import "time"

// ImageRecord is one row of a catalog source: a named image with its
// native pixel dimensions.
type ImageRecord struct {
	Name         string `json:"name" yaml:"name"`
	ImageURL     string `json:"image_url" yaml:"image_url"`
	ThumbnailURL string `json:"thumbnail_url" yaml:"thumbnail_url"`
	NativeWidth  int    `json:"native_width" yaml:"native_width"`
	NativeHeight int    `json:"native_height" yaml:"native_height"`
}

// DisplayFrame is the on-screen rectangle, in display pixels, within which
// overlay placements are expressed. Export-time scale factors are derived
// from it: nativeBaseWidth/Width and nativeBaseHeight/Height.
type DisplayFrame struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// OverlayPlacement is one image placed on the frame. The rectangle is in
// display coordinates; the native dimensions are informational sizing data
// carried from the source record and are not used at export time.
type OverlayPlacement struct {
	ID           string  `json:"id" yaml:"id,omitempty"`
	SourceURL    string  `json:"source_url" yaml:"source"`
	X            float64 `json:"x" yaml:"x"`
	Y            float64 `json:"y" yaml:"y"`
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
	NativeWidth  int     `json:"native_width" yaml:"native_width,omitempty"`
	NativeHeight int     `json:"native_height" yaml:"native_height,omitempty"`
}

// Composition is one editing session: a base image, its watermarked copy,
// and the ordered overlay list. Overlays are only meaningful relative to
// the current base; replacing the base clears them.
type Composition struct {
	ID              string             `json:"id"`
	BaseImage       []byte             `json:"-"`
	WatermarkedBase []byte             `json:"-"`
	BaseWidth       int                `json:"base_width"`
	BaseHeight      int                `json:"base_height"`
	Frame           DisplayFrame       `json:"frame"`
	Overlays        []OverlayPlacement `json:"overlays"`
	CreatedAt       time.Time          `json:"created_at"`
}
