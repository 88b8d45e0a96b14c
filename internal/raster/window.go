package raster

import (
	"math"

	"github.com/paulmach/orb"
)

// Window is a pixel-space rectangle within a raster.
type Window struct {
	Col    int
	Row    int
	Width  int
	Height int
}

// WindowFromBound converts a world-space bound to the pixel window covering
// it, clamped to the raster extent. Assumes a north-up geotransform (no
// rotation terms, negative y resolution). Returns false when the bound does
// not overlap the raster at all.
func WindowFromBound(gt [6]float64, bound orb.Bound, width, height int) (Window, bool) {
	// The epsilon keeps float noise in reprojected bounds from shifting the
	// window by a whole pixel.
	const eps = 1e-9
	minCol := int(math.Floor((bound.Min.X()-gt[0])/gt[1] + eps))
	maxCol := int(math.Ceil((bound.Max.X()-gt[0])/gt[1] - eps))
	// gt[5] is negative, so the bound's max Y maps to the top row.
	minRow := int(math.Floor((bound.Max.Y()-gt[3])/gt[5] + eps))
	maxRow := int(math.Ceil((bound.Min.Y()-gt[3])/gt[5] - eps))

	if minCol < 0 {
		minCol = 0
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxCol > width {
		maxCol = width
	}
	if maxRow > height {
		maxRow = height
	}

	if minCol >= maxCol || minRow >= maxRow {
		return Window{}, false
	}

	return Window{
		Col:    minCol,
		Row:    minRow,
		Width:  maxCol - minCol,
		Height: maxRow - minRow,
	}, true
}

// Transform recomputes a geotransform whose origin is the window's top-left
// corner. Pixel resolution is unchanged by cropping.
func (w Window) Transform(gt [6]float64) [6]float64 {
	cropped := gt
	cropped[0] = gt[0] + float64(w.Col)*gt[1] + float64(w.Row)*gt[2]
	cropped[3] = gt[3] + float64(w.Col)*gt[4] + float64(w.Row)*gt[5]
	return cropped
}
