package compositor

import (
	"fmt"
	"time"

	"github.com/blink-new/overlay-composer/internal/models"
)

const (
	dropOffset      = 50
	placementScale  = 0.3
	placementMaxDim = 150
)

// NewPlacement computes the initial placement rectangle for a catalog
// record dropped at a point in display coordinates: the position is the
// drop point minus 50px per axis, floored at 0, and the size is 30% of
// the record's native size capped at 150 display pixels per axis.
//
// The caps apply to each axis independently, so a record whose cap binds
// on only one axis lands with a distorted aspect ratio.
func NewPlacement(rec models.ImageRecord, dropX, dropY float64) models.OverlayPlacement {
	x := dropX - dropOffset
	if x < 0 {
		x = 0
	}
	y := dropY - dropOffset
	if y < 0 {
		y = 0
	}

	return models.OverlayPlacement{
		ID:           fmt.Sprintf("overlay_%d", time.Now().UnixNano()),
		SourceURL:    rec.ImageURL,
		X:            x,
		Y:            y,
		Width:        initialDim(rec.NativeWidth),
		Height:       initialDim(rec.NativeHeight),
		NativeWidth:  rec.NativeWidth,
		NativeHeight: rec.NativeHeight,
	}
}

func initialDim(native int) float64 {
	d := float64(native) * placementScale
	if d > placementMaxDim {
		return placementMaxDim
	}
	return d
}
